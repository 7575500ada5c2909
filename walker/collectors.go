package walker

import "github.com/erraggy/oastransform/document"

// ExtensionInfo contains information about a collected vendor extension.
type ExtensionInfo struct {
	// Name is the extension name, e.g. "x-logo".
	Name string

	// Node is the extension value.
	Node document.NodeID

	// Owner is the OpenAPI type of the object carrying the extension.
	Owner NodeType

	// JSONPath is the full JSON path to the extension.
	JSONPath string
}

// ExtensionCollector holds extensions collected during a walk.
type ExtensionCollector struct {
	// All contains all extensions in traversal order.
	All []*ExtensionInfo

	// ByName groups extensions by name.
	ByName map[string][]*ExtensionInfo
}

// CollectExtensions walks the document and collects every vendor extension.
func CollectExtensions(doc *document.Document) (*ExtensionCollector, error) {
	collector := &ExtensionCollector{
		All:    make([]*ExtensionInfo, 0),
		ByName: make(map[string][]*ExtensionInfo),
	}

	err := Walk(doc,
		WithParentTracking(),
		WithExtensionHandler(func(wc *WalkContext) Action {
			info := &ExtensionInfo{
				Name:     wc.Name,
				Node:     wc.Node,
				JSONPath: wc.JSONPath,
			}
			if wc.Parent != nil {
				info.Owner = wc.Parent.NodeType
			}
			collector.All = append(collector.All, info)
			collector.ByName[wc.Name] = append(collector.ByName[wc.Name], info)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// Stats counts the OpenAPI objects of a document.
type Stats struct {
	PathItems       int
	Operations      int
	Schemas         int
	PropertySchemas int
	Extensions      int

	// ByType counts every visited node by type.
	ByType map[NodeType]int
}

// CollectStats walks the document and counts its OpenAPI objects.
// Schemas includes property schemas.
func CollectStats(doc *document.Document) (*Stats, error) {
	stats := &Stats{ByType: make(map[NodeType]int)}

	count := func(wc *WalkContext) Action {
		stats.ByType[wc.NodeType]++
		return Continue
	}

	opts := make([]Option, 0, len(nodeTypeNames))
	for t := NodeDocument; t <= NodeExtension; t++ {
		// Schema handlers also see property schemas; count those once.
		if t == NodePropertySchema {
			continue
		}
		opts = append(opts, WithHandler(t, count))
	}

	if err := Walk(doc, opts...); err != nil {
		return nil, err
	}

	stats.PathItems = stats.ByType[NodePathItem]
	stats.Operations = stats.ByType[NodeOperation]
	stats.PropertySchemas = stats.ByType[NodePropertySchema]
	stats.Schemas = stats.ByType[NodeSchema] + stats.PropertySchemas
	stats.Extensions = stats.ByType[NodeExtension]
	return stats, nil
}
