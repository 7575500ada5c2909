package walker

import "github.com/erraggy/oastransform/document"

// fieldShape describes how the value of a member holds its typed objects.
type fieldShape uint8

const (
	// single: the value is one object.
	single fieldShape = iota
	// mapOf: the value is an object whose members are name-keyed objects.
	mapOf
	// listOf: the value is an array of objects.
	listOf
	// singleOrList: the value is one object or an array of objects.
	singleOrList
)

type field struct {
	shape     fieldShape
	node      NodeType
	component bool
}

// objectGrammar lists the members of one OpenAPI object type that hold
// further OpenAPI objects. Members not listed are opaque values.
type objectGrammar struct {
	fields map[string]field
	// patterned is the type of every member not in fields (paths, status codes,
	// callback expressions). Nil when the object has no patterned members.
	patterned *field
	// extensible objects treat "x-" members as vendor extensions.
	extensible bool
}

type grammar map[NodeType]*objectGrammar

func one(t NodeType) field  { return field{shape: single, node: t} }
func many(t NodeType) field { return field{shape: mapOf, node: t} }
func list(t NodeType) field { return field{shape: listOf, node: t} }

func componentMap(t NodeType) field {
	return field{shape: mapOf, node: t, component: true}
}

func extensible(fields map[string]field) *objectGrammar {
	return &objectGrammar{fields: fields, extensible: true}
}

func patternedOf(t NodeType, fields map[string]field) *objectGrammar {
	f := one(t)
	return &objectGrammar{fields: fields, patterned: &f, extensible: true}
}

// schemaFields covers the schema keywords of OAS 2.0 through 3.2 (JSON Schema
// 2020-12 for 3.1+). A keyword whose value has an unexpected shape, such as
// "additionalProperties": true, is skipped.
var schemaFields = map[string]field{
	"properties":            many(NodePropertySchema),
	"patternProperties":     many(NodeSchema),
	"additionalProperties":  one(NodeSchema),
	"unevaluatedProperties": one(NodeSchema),
	"propertyNames":         one(NodeSchema),
	"dependentSchemas":      many(NodeSchema),
	"items":                 {shape: singleOrList, node: NodeSchema},
	"additionalItems":       one(NodeSchema),
	"prefixItems":           list(NodeSchema),
	"unevaluatedItems":      one(NodeSchema),
	"contains":              one(NodeSchema),
	"allOf":                 list(NodeSchema),
	"anyOf":                 list(NodeSchema),
	"oneOf":                 list(NodeSchema),
	"not":                   one(NodeSchema),
	"if":                    one(NodeSchema),
	"then":                  one(NodeSchema),
	"else":                  one(NodeSchema),
	"contentSchema":         one(NodeSchema),
	"$defs":                 many(NodeSchema),
	"definitions":           many(NodeSchema),
	"discriminator":         one(NodeDiscriminator),
	"xml":                   one(NodeXML),
	"externalDocs":          one(NodeExternalDocs),
}

var shared = grammar{
	NodeInfo: extensible(map[string]field{
		"contact": one(NodeContact),
		"license": one(NodeLicense),
	}),
	NodeContact:        extensible(nil),
	NodeLicense:        extensible(nil),
	NodeExternalDocs:   extensible(nil),
	NodeTag:            extensible(map[string]field{"externalDocs": one(NodeExternalDocs)}),
	NodeResponses:      patternedOf(NodeResponse, nil),
	NodeSchema:         extensible(schemaFields),
	NodePropertySchema: extensible(schemaFields),
	NodeXML:            extensible(nil),
}

var oas2Grammar = merge(shared, grammar{
	NodeDocument: extensible(map[string]field{
		"info":                one(NodeInfo),
		"paths":               one(NodePaths),
		"definitions":         componentMap(NodeSchema),
		"parameters":          componentMap(NodeParameter),
		"responses":           componentMap(NodeResponse),
		"securityDefinitions": componentMap(NodeSecurityScheme),
		"tags":                list(NodeTag),
		"externalDocs":        one(NodeExternalDocs),
	}),
	NodePaths: patternedOf(NodePathItem, nil),
	NodePathItem: extensible(map[string]field{
		"get":        one(NodeOperation),
		"put":        one(NodeOperation),
		"post":       one(NodeOperation),
		"delete":     one(NodeOperation),
		"options":    one(NodeOperation),
		"head":       one(NodeOperation),
		"patch":      one(NodeOperation),
		"parameters": list(NodeParameter),
	}),
	NodeOperation: extensible(map[string]field{
		"externalDocs": one(NodeExternalDocs),
		"parameters":   list(NodeParameter),
		"responses":    one(NodeResponses),
	}),
	NodeParameter: extensible(map[string]field{
		"schema": one(NodeSchema),
		"items":  one(NodeItems),
	}),
	NodeItems: extensible(map[string]field{"items": one(NodeItems)}),
	NodeResponse: extensible(map[string]field{
		"schema":  one(NodeSchema),
		"headers": many(NodeHeader),
	}),
	NodeHeader:         extensible(map[string]field{"items": one(NodeItems)}),
	NodeSecurityScheme: extensible(map[string]field{"scopes": one(NodeScopes)}),
	NodeScopes:         extensible(nil),
})

var oas3Grammar = merge(shared, grammar{
	NodeDocument: extensible(map[string]field{
		"info":         one(NodeInfo),
		"servers":      list(NodeServer),
		"paths":        one(NodePaths),
		"webhooks":     many(NodePathItem),
		"components":   {shape: single, node: NodeComponents, component: true},
		"tags":         list(NodeTag),
		"externalDocs": one(NodeExternalDocs),
	}),
	NodeServer:         extensible(map[string]field{"variables": many(NodeServerVariable)}),
	NodeServerVariable: extensible(nil),
	NodePaths:          patternedOf(NodePathItem, nil),
	NodePathItem: extensible(map[string]field{
		"get":                  one(NodeOperation),
		"put":                  one(NodeOperation),
		"post":                 one(NodeOperation),
		"delete":               one(NodeOperation),
		"options":              one(NodeOperation),
		"head":                 one(NodeOperation),
		"patch":                one(NodeOperation),
		"trace":                one(NodeOperation),
		"query":                one(NodeOperation),
		"additionalOperations": many(NodeOperation),
		"servers":              list(NodeServer),
		"parameters":           list(NodeParameter),
	}),
	NodeOperation: extensible(map[string]field{
		"externalDocs": one(NodeExternalDocs),
		"parameters":   list(NodeParameter),
		"requestBody":  one(NodeRequestBody),
		"responses":    one(NodeResponses),
		"callbacks":    many(NodeCallback),
		"servers":      list(NodeServer),
	}),
	NodeParameter: extensible(map[string]field{
		"schema":   one(NodeSchema),
		"content":  many(NodeMediaType),
		"examples": many(NodeExample),
	}),
	NodeRequestBody: extensible(map[string]field{"content": many(NodeMediaType)}),
	NodeMediaType: extensible(map[string]field{
		"schema":         one(NodeSchema),
		"itemSchema":     one(NodeSchema),
		"examples":       many(NodeExample),
		"encoding":       many(NodeEncoding),
		"prefixEncoding": list(NodeEncoding),
		"itemEncoding":   one(NodeEncoding),
	}),
	NodeEncoding: extensible(map[string]field{
		"headers":        many(NodeHeader),
		"encoding":       many(NodeEncoding),
		"prefixEncoding": list(NodeEncoding),
		"itemEncoding":   one(NodeEncoding),
	}),
	NodeResponse: extensible(map[string]field{
		"headers": many(NodeHeader),
		"content": many(NodeMediaType),
		"links":   many(NodeLink),
	}),
	NodeHeader: extensible(map[string]field{
		"schema":   one(NodeSchema),
		"content":  many(NodeMediaType),
		"examples": many(NodeExample),
	}),
	NodeExample:  extensible(nil),
	NodeLink:     extensible(map[string]field{"server": one(NodeServer)}),
	NodeCallback: patternedOf(NodePathItem, nil),
	NodeComponents: extensible(map[string]field{
		"schemas":         componentMap(NodeSchema),
		"responses":       componentMap(NodeResponse),
		"parameters":      componentMap(NodeParameter),
		"examples":        componentMap(NodeExample),
		"requestBodies":   componentMap(NodeRequestBody),
		"headers":         componentMap(NodeHeader),
		"securitySchemes": componentMap(NodeSecurityScheme),
		"links":           componentMap(NodeLink),
		"callbacks":       componentMap(NodeCallback),
		"pathItems":       componentMap(NodePathItem),
		"mediaTypes":      componentMap(NodeMediaType),
	}),
	NodeSecurityScheme: extensible(map[string]field{"flows": one(NodeOAuthFlows)}),
	NodeOAuthFlows: extensible(map[string]field{
		"implicit":            one(NodeOAuthFlow),
		"password":            one(NodeOAuthFlow),
		"clientCredentials":   one(NodeOAuthFlow),
		"authorizationCode":   one(NodeOAuthFlow),
		"deviceAuthorization": one(NodeOAuthFlow),
	}),
	NodeOAuthFlow:     extensible(nil),
	NodeDiscriminator: extensible(nil),
})

func merge(base, overlay grammar) grammar {
	out := make(grammar, len(base)+len(overlay))
	for t, g := range base {
		out[t] = g
	}
	for t, g := range overlay {
		out[t] = g
	}
	return out
}

// grammarFor returns the object grammar for a document's OpenAPI version.
func grammarFor(v document.OASVersion) (grammar, bool) {
	switch {
	case v.IsOAS2():
		return oas2Grammar, true
	case v.IsOAS3():
		return oas3Grammar, true
	default:
		return nil, false
	}
}

// IsExtensible reports whether objects of type t accept vendor extensions
// in documents of version v.
func IsExtensible(v document.OASVersion, t NodeType) bool {
	g, ok := grammarFor(v)
	if !ok {
		return false
	}
	og, ok := g[t]
	return ok && og.extensible
}
