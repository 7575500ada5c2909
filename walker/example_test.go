package walker_test

import (
	"fmt"

	"github.com/erraggy/oastransform/document"
	"github.com/erraggy/oastransform/walker"
)

func ExampleWalk() {
	doc, err := document.Parse([]byte(`{
		"openapi": "3.0.3",
		"info": {"title": "Pet Store API", "version": "1.0.0"},
		"paths": {
			"/pets": {
				"get": {"operationId": "listPets"},
				"post": {"operationId": "createPet"}
			}
		}
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	var operationIDs []string
	_ = walker.Walk(doc,
		walker.WithOperationHandler(func(wc *walker.WalkContext) walker.Action {
			id, _ := wc.Document.MemberString(wc.Node, "operationId")
			operationIDs = append(operationIDs, id)
			return walker.Continue
		}),
	)

	for _, id := range operationIDs {
		fmt.Println(id)
	}
	// Output:
	// listPets
	// createPet
}

func ExampleCollectExtensions() {
	doc, err := document.Parse([]byte(`{
		"openapi": "3.1.0",
		"info": {"title": "API", "version": "1", "x-audience": "public"},
		"paths": {"/a": {"get": {"x-internal": true}}}
	}`))
	if err != nil {
		fmt.Println(err)
		return
	}

	collector, _ := walker.CollectExtensions(doc)
	for _, ext := range collector.All {
		fmt.Printf("%s on %s at %s\n", ext.Name, ext.Owner, ext.JSONPath)
	}
	// Output:
	// x-audience on info at $.info['x-audience']
	// x-internal on operation at $.paths['/a'].get['x-internal']
}
