package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/routemap/pkg/scanner"
)

// Keys under which a route is promoted when its node also has children.
const (
	IndexKey = "index"
	BaseKey  = "base"
)

// promotedKey returns the i-th candidate key for a promoted route:
// index, base, _index, _index_2, _index_3, ...
func promotedKey(i int) string {
	switch i {
	case 0:
		return IndexKey
	case 1:
		return BaseKey
	case 2:
		return "_" + IndexKey
	}
	return fmt.Sprintf("_%s_%d", IndexKey, i-1)
}

// Node is one level of the nested route structure. A node may carry a route,
// children, or both; when it carries both, the route is rendered under the
// first of IndexKey, BaseKey, "_index", "_index_2", ... that no child uses.
type Node struct {
	Route    *scanner.Route
	Children *orderedmap.OrderedMap[string, *Node]
	// Path is the URL path of the node, whether or not it carries a route
	Path string

	// root always renders as an object, even when it only holds "/"
	root bool
}

// NewNode creates an empty node.
func NewNode() *Node {
	return &Node{Children: orderedmap.New[string, *Node]()}
}

// KeyFunc returns the key chain for a route path. The root route has no keys.
type KeyFunc func(path string) []string

// PathKeys splits a URL path into its raw segments.
func PathKeys(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Build groups routes into a nested structure using keys. Routes may arrive in
// any order; a route only replaces the route of its own node and never
// removes children created by longer paths.
func Build(routes []scanner.Route, keys KeyFunc) *Node {
	root := NewNode()
	root.root = true
	root.Path = "/"
	for i := range routes {
		n := root
		for _, k := range keys(routes[i].Path) {
			child, ok := n.Children.Get(k)
			if !ok {
				child = NewNode()
				child.Path = strings.TrimSuffix(n.Path, "/") + "/" + k
				n.Children.Set(k, child)
			}
			n = child
		}
		r := routes[i]
		n.Route = &r
	}
	return root
}

// ToNested builds the nested route structure keyed by raw path segment.
func ToNested(routes []scanner.Route) *Node {
	return Build(routes, PathKeys)
}

// ToAccessorTree builds the nested structure keyed by accessor token. Sibling
// segments that map to the same token ("foo-bar" and "fooBar") keep separate
// nodes; later ones get a _2, _3, ... suffix.
func ToAccessorTree(routes []scanner.Route) *Node {
	return rekey(ToNested(routes))
}

func rekey(n *Node) *Node {
	out := NewNode()
	out.Route = n.Route
	out.Path = n.Path
	out.root = n.root
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		token := SegmentToken(scanner.ParseSegment(pair.Key))
		key := token
		for i := 2; ; i++ {
			if _, taken := out.Children.Get(key); !taken {
				break
			}
			key = fmt.Sprintf("%s_%d", token, i)
		}
		out.Children.Set(key, rekey(pair.Value))
	}
	return out
}

// IsLeaf reports whether the node carries a route and no children.
// The root of a structure is never a leaf.
func (n *Node) IsLeaf() bool {
	return !n.root && n.Route != nil && n.Children.Len() == 0
}

// PromotedKey returns the key the node's own route is rendered under when
// the node also has children.
func (n *Node) PromotedKey() string {
	for i := 0; ; i++ {
		key := promotedKey(i)
		if _, taken := n.Children.Get(key); !taken {
			return key
		}
	}
}

// Entries returns the node's rendered key/value pairs: the promoted route
// first, then children in insertion order. Values are *scanner.Route or *Node.
func (n *Node) Entries() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	if n.Route != nil {
		out.Set(n.PromotedKey(), n.Route)
	}
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsLeaf() {
			out.Set(pair.Key, pair.Value.Route)
		} else {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}

// MarshalJSON renders a leaf as its route and any other node as an ordered object.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(n.Route)
	}
	return json.Marshal(n.Entries())
}

// MarshalYAML mirrors MarshalJSON, keeping key order.
func (n *Node) MarshalYAML() (interface{}, error) {
	if n.IsLeaf() {
		return n.Route, nil
	}

	out := &yaml.Node{Kind: yaml.MappingNode}
	for pair := n.Entries().Oldest(); pair != nil; pair = pair.Next() {
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, fmt.Errorf("encode %s: %w", pair.Key, err)
		}
		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			value,
		)
	}
	return out, nil
}

// Flatten returns the routes of the structure in depth-first insertion order.
func (n *Node) Flatten() []scanner.Route {
	var out []scanner.Route
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Route != nil {
			out = append(out, *node.Route)
		}
		for pair := node.Children.Oldest(); pair != nil; pair = pair.Next() {
			walk(pair.Value)
		}
	}
	walk(n)
	return out
}

// ToArray walks a decoded nested structure (as produced by json.Unmarshal into
// map[string]any) and returns its routes. A map is a route once it carries a
// string "router" field; its path is rebuilt from the key chain. A record whose
// "path" equals its parent's path is the parent's promoted route. Records
// without a path fall back to the key: the last of the contiguous run of
// promoted keys present is taken as promoted.
func ToArray(nested map[string]any) ([]scanner.Route, error) {
	var routes []scanner.Route
	if err := collect(nested, nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func collect(node map[string]any, chain []string, routes *[]scanner.Route) error {
	promoted := lastPromotedKey(node)
	for key, value := range node {
		child, ok := value.(map[string]any)
		if !ok {
			continue
		}
		keyChain := append(chain[:len(chain):len(chain)], key)
		if !IsRouteRecord(child) {
			if err := collect(child, keyChain, routes); err != nil {
				return err
			}
			continue
		}

		route, err := decodeRoute(child)
		if err != nil {
			return fmt.Errorf("route %s: %w", joinPath(keyChain), err)
		}

		if parent := joinPath(chain); isPromoted(key, route.Path, parent, promoted) {
			route.Path = parent
		} else {
			route.Path = joinPath(keyChain)
		}
		*routes = append(*routes, route)
	}
	return nil
}

// IsRouteRecord reports whether a decoded map is a route rather than a grouping node.
func IsRouteRecord(m map[string]any) bool {
	_, ok := m["router"].(string)
	return ok
}

func isPromoted(key, recordPath, parent, promoted string) bool {
	if recordPath != "" {
		return recordPath == parent
	}
	return key == promoted
}

func lastPromotedKey(node map[string]any) string {
	last := ""
	for i := 0; ; i++ {
		key := promotedKey(i)
		if _, ok := node[key]; !ok {
			return last
		}
		last = key
	}
}

func decodeRoute(m map[string]any) (scanner.Route, error) {
	var r scanner.Route
	data, err := json.Marshal(m)
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(data, &r)
	return r, err
}

func joinPath(chain []string) string {
	return "/" + strings.Join(chain, "/")
}
