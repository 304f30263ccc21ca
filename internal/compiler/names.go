package compiler

import (
	"strings"

	"github.com/vk/shadegrid/internal/graph"
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/internal/spec"
)

// Fixed global identifiers. u_time and u_resolution are uniforms the
// runtime always binds; baseCoordName is computed at the top of main().
const (
	timeUniform       = "u_time"
	resolutionUniform = "u_resolution"
	baseCoordName     = "uv"
)

// uniformEntry is one allocated uniform and its usage bookkeeping. Usage is
// recorded at the moment a template slot resolves to the uniform, so no
// post-hoc text scan is needed to eliminate dead uniforms.
type uniformEntry struct {
	name  string
	node  string
	param spec.ParamDef
	// live uniforms belong to external data-source nodes and are retained
	// whether referenced or not.
	live bool
	used bool
}

// nameTable holds every name allocated for one compile call. It is created
// by allocateNames and threaded through codegen and assembly; nothing in it
// survives the call, which keeps Compile reentrant.
type nameTable struct {
	// outputs maps nodeID -> portName -> variable name.
	outputs map[string]map[string]string
	// uniforms in allocation order (declared node order, then declared
	// parameter order), with a by-name index.
	uniforms []*uniformEntry
	byName   map[string]*uniformEntry
}

// sanitizeIdent rewrites s into a GLSL identifier fragment: every
// non-alphanumeric byte becomes '_', and a leading digit gains an 'n'
// prefix.
func sanitizeIdent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c >= '0' && c <= '9':
			if i == 0 {
				b.WriteByte('n')
			}
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// capitalize upper-cases the first byte; uniform names carry the parameter
// capitalized so the node id and parameter segments read apart.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

// outputVarName is the deterministic variable name for a node's output
// port.
func outputVarName(nodeID, port string) string {
	return "out_" + sanitizeIdent(nodeID) + "_" + sanitizeIdent(port)
}

// uniformName is the deterministic uniform name for a node parameter,
// globally unique per (node, parameter).
func uniformName(nodeID, param string) string {
	return "u_" + sanitizeIdent(nodeID) + "_" + capitalize(sanitizeIdent(param))
}

// localArrayName is the name of the node-local constant array emitted for
// an array-typed parameter.
func localArrayName(nodeID, param string) string {
	return "arr_" + sanitizeIdent(nodeID) + "_" + sanitizeIdent(param)
}

// allocateNames builds the call-scoped name table: an output variable per
// declared output port, and a uniform per parameter unless suppressed. A
// uniform is suppressed when the parameter's type is array or string (never
// uniform-backed), or when an override-mode connection replaces the base
// value entirely. add/subtract/multiply feeds keep the uniform, because the
// generated code combines the live value with the runtime-adjustable base.
func allocateNames(doc *graph.Document, reg *registry.Registry, paramFeeds map[string]map[string]*graph.Connection) *nameTable {
	nt := &nameTable{
		outputs: make(map[string]map[string]string, len(doc.Nodes)),
		byName:  make(map[string]*uniformEntry),
	}

	for _, n := range doc.Nodes {
		s, _ := reg.Lookup(n.Type)

		ports := make(map[string]string, len(s.Outputs))
		for _, p := range s.Outputs {
			ports[p.Name] = outputVarName(n.ID, p.Name)
		}
		nt.outputs[n.ID] = ports

		for _, def := range s.Params {
			if def.Type == spec.TypeArray || def.Type == spec.TypeString {
				continue
			}
			if feed := paramFeeds[n.ID][def.Name]; feed != nil && n.Mode(def.Name, def) == spec.ModeOverride {
				continue
			}
			entry := &uniformEntry{
				name:  uniformName(n.ID, def.Name),
				node:  n.ID,
				param: def,
				live:  s.LiveSource,
			}
			nt.uniforms = append(nt.uniforms, entry)
			nt.byName[entry.name] = entry
		}
	}

	return nt
}

// output returns the allocated variable name for a node output port.
func (nt *nameTable) output(nodeID, port string) string {
	return nt.outputs[nodeID][port]
}

// uniform returns the allocated uniform entry for a node parameter, or nil
// when it was suppressed.
func (nt *nameTable) uniform(nodeID, param string) *uniformEntry {
	return nt.byName[uniformName(nodeID, param)]
}
