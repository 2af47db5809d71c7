package main_test

import (
	"github.com/getkin/kin-openapi/openapi3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T
	var loader *openapi3.Loader

	BeforeEach(func() {
		loader = openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("validates against the OpenAPI 3 schema", func() {
		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("documents the core resources", func() {
		for _, path := range []string{
			"/usuarios/login",
			"/usuarios/registro",
			"/tareas",
			"/tareas/{id}",
			"/tareas/{taskId}/comentarios",
			"/solicitudes/{id}",
			"/dashboard/stats",
			"/agenda/eventos",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("requires bearer auth on protected operations", func() {
		item := doc.Paths.Find("/tareas")
		Expect(item).NotTo(BeNil())
		Expect(item.Get.Security).NotTo(BeNil())
	})
})
