// Package emit is the file-assembly layer that turns one orchestrated
// schema module plus a spec's endpoints into the final source files a
// caller writes to disk. internal/orchestrate and internal/emit/endpoint
// only ever produce type/validator *text*; this package is where that
// text is poured into package/import/file boilerplate via text/template,
// grounded on the teacher's internal/emit/go/server and internal/emit/wx
// template-driven emission (embed.FS + text/template, one template per
// output shape).
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/oas-schemacore/codegen/internal/emit/endpoint"
	"github.com/oas-schemacore/codegen/internal/emit/types"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/orchestrate"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// File is one generated file: a repo-relative path and its full content.
// internal/writer performs the actual disk I/O; this package never opens
// a file itself.
type File struct {
	Path    string
	Content string
}

// Options configures one Dispatch run.
type Options struct {
	// Targets selects which language(s) to emit: "go", "typescript".
	Targets []string
	// ModulePerTag splits the Go target's endpoint declarations into one
	// file per operation tag instead of a single endpoints.gen.go. The
	// TypeScript target always emits one combined endpoints file: per-tag
	// TS files would need per-file imports back to types.gen.ts that this
	// core does not compute, so module_per_tag is a Go-only split.
	ModulePerTag bool
	ModulePrefix string
	// GoPackage names the Go package every generated Go file belongs to.
	// Defaults to "codegen". Every Go file shares this one package,
	// regardless of ModulePerTag, because endpoint declarations reference
	// component schema types by their bare identifier.
	GoPackage string
}

func resolveTarget(name string) (types.Target, error) {
	switch name {
	case "go":
		return types.TargetGo, nil
	case "typescript", "ts":
		return types.TargetTypeScript, nil
	default:
		return 0, fmt.Errorf("unknown target: %s", name)
	}
}

// Dispatch runs the full orchestration + endpoint-emission pass for every
// requested target and renders the results into File values. Calling
// Dispatch twice with the same spec and Options always yields the same
// Files, in the same order — determinism flows up from
// internal/orchestrate's ordering guarantee.
func Dispatch(spec *ir.Spec, opt Options) ([]File, []gencontext.Warning, error) {
	if spec == nil {
		return nil, nil, fmt.Errorf("nil IR spec")
	}
	if len(opt.Targets) == 0 {
		opt.Targets = []string{"go"}
	}
	goPkg := opt.GoPackage
	if goPkg == "" {
		goPkg = "codegen"
	}

	available := map[string]bool{}
	for n := range spec.Schemas {
		available[n] = true
	}

	var files []File
	var warnings []gencontext.Warning

	for _, targetName := range opt.Targets {
		target, err := resolveTarget(targetName)
		if err != nil {
			return nil, nil, err
		}

		mod, w := orchestrate.Build(spec.Schemas, orchestrate.Options{Target: target, ModulePrefix: opt.ModulePrefix})
		warnings = append(warnings, w...)

		groups := groupEndpoints(spec.Endpoints, opt.ModulePerTag && target == types.TargetGo)
		var declGroups []endpointGroup
		for _, g := range groups {
			grp := endpointGroup{name: g.name}
			for _, e := range g.endpoints {
				d := endpoint.Build(e, endpoint.Options{Target: target, ModulePrefix: opt.ModulePrefix, AvailableSchemas: available})
				warnings = append(warnings, d.Warnings...)
				grp.endpoints = append(grp.endpoints, d)
			}
			declGroups = append(declGroups, grp)
		}

		switch target {
		case types.TargetGo:
			schemaFile, err := renderGoSchemas(mod, goPkg)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, schemaFile)
			for _, g := range declGroups {
				f, err := renderGoEndpoints(g, goPkg)
				if err != nil {
					return nil, nil, err
				}
				files = append(files, f)
			}
		case types.TargetTypeScript:
			schemaFile, err := renderTSSchemas(mod)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, schemaFile)

			var all []endpoint.Declaration
			for _, g := range declGroups {
				all = append(all, g.endpoints...)
			}
			f, err := renderTSEndpoints(all, available)
			if err != nil {
				return nil, nil, err
			}
			files = append(files, f)
		}
	}

	return files, warnings, nil
}

type endpointGroup struct {
	name      string
	endpoints []endpoint.Declaration
}

type rawEndpointGroup struct {
	name      string
	endpoints []ir.Endpoint
}

// groupEndpoints sorts endpoints by name for determinism and, when
// perTag is set, splits them by their Tag field (untagged endpoints fall
// into a "default" group). Group order is alphabetical by group name.
func groupEndpoints(endpoints []ir.Endpoint, perTag bool) []rawEndpointGroup {
	sorted := append([]ir.Endpoint{}, endpoints...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	if !perTag {
		return []rawEndpointGroup{{name: "endpoints", endpoints: sorted}}
	}

	byTag := map[string][]ir.Endpoint{}
	for _, e := range sorted {
		tag := e.Tag
		if tag == "" {
			tag = "default"
		}
		byTag[tag] = append(byTag[tag], e)
	}
	names := make([]string, 0, len(byTag))
	for t := range byTag {
		names = append(names, t)
	}
	sort.Strings(names)

	out := make([]rawEndpointGroup, 0, len(names))
	for _, n := range names {
		out = append(out, rawEndpointGroup{name: n, endpoints: byTag[n]})
	}
	return out
}

func goPackageName(tag string) string {
	ident := types.GoPublicIdent(tag)
	if ident == "" {
		return "endpoints"
	}
	return strings.ToLower(ident)
}

var templateFuncs = template.FuncMap{
	"goIdent": types.GoPublicIdent,
	"goTag": func(jsonName string, required bool) string {
		if required {
			return fmt.Sprintf("`json:%q`", jsonName)
		}
		return fmt.Sprintf("`json:%q`", jsonName+",omitempty")
	},
}

func render(templateName string, data any) (string, error) {
	text, err := templatesFS.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", templateName, err)
	}
	tpl, err := template.New(templateName).Funcs(templateFuncs).Parse(string(text))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", templateName, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

type schemaFileData struct {
	Header  string
	Package string
	Schemas []orchestrate.SchemaDeclaration
}

type endpointFileData struct {
	Header    string
	Package   string
	Endpoints []endpoint.Declaration
	// SchemaImport is the TypeScript target's static "import { ... } from
	// ./types.gen" line, non-empty whenever any endpoint in this file
	// references a component schema. The Go target instead shares one
	// package with its schema file, so no import is needed there.
	SchemaImport string
}

func renderGoSchemas(mod *orchestrate.Module, pkg string) (File, error) {
	content, err := render("go_schemas.tpl", schemaFileData{Header: strings.TrimSpace(mod.Header), Package: pkg, Schemas: mod.Schemas})
	if err != nil {
		return File{}, err
	}
	return File{Path: path.Join("gen", pkg, "schema.gen.go"), Content: content}, nil
}

func renderTSSchemas(mod *orchestrate.Module) (File, error) {
	content, err := render("ts_schemas.tpl", schemaFileData{Header: strings.TrimSpace(mod.Header), Schemas: mod.Schemas})
	if err != nil {
		return File{}, err
	}
	return File{Path: path.Join("gen", "types.gen.ts"), Content: content}, nil
}

func renderGoEndpoints(g endpointGroup, pkg string) (File, error) {
	header := "Code generated by the schema compilation core. DO NOT EDIT.\n// module: " + g.name
	content, err := render("go_endpoints.tpl", endpointFileData{Header: header, Package: pkg, Endpoints: g.endpoints})
	if err != nil {
		return File{}, err
	}
	stem := goPackageName(g.name)
	return File{Path: path.Join("gen", pkg, stem+".gen.go"), Content: content}, nil
}

func renderTSEndpoints(decls []endpoint.Declaration, available map[string]bool) (File, error) {
	header := "Code generated by the schema compilation core. DO NOT EDIT."
	content, err := render("ts_endpoints.tpl", endpointFileData{
		Header:       header,
		Endpoints:    decls,
		SchemaImport: schemaImportLine(decls, available),
	})
	if err != nil {
		return File{}, err
	}
	return File{Path: path.Join("gen", "endpoints.gen.ts"), Content: content}, nil
}

var identPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// schemaImportLine scans decls' rendered type and validator text for any
// identifier naming a component schema's type or validator (the bare
// identifiers internal/emit/types and internal/emit/schema's reference()
// functions render whenever a schema is in scope) and returns a static
// "import { Name, NameSchema, ... } from ./types.gen" line listing every
// one referenced, sorted for determinism. Empty when nothing in decls
// references a component schema.
func schemaImportLine(decls []endpoint.Declaration, available map[string]bool) string {
	identToName := map[string]string{}
	for name := range available {
		ident := types.GoPublicIdent(name)
		identToName[ident] = name
		identToName[ident+"Schema"] = name
	}

	referenced := map[string]bool{}
	scan := func(text string) {
		for _, word := range identPattern.FindAllString(text, -1) {
			if name, ok := identToName[word]; ok {
				referenced[name] = true
			}
		}
	}
	for _, d := range decls {
		scan(d.RequestTypeText)
		scan(d.RequestValidatorText)
		scan(d.ResponseTypeText)
		scan(d.ResponseValidatorText)
		for _, p := range d.PathParams {
			scan(p.TypeText)
		}
		for _, p := range d.QueryParams {
			scan(p.TypeText)
		}
		for _, a := range d.Aux {
			scan(a.TypeText)
			scan(a.ValidatorText)
		}
	}

	if len(referenced) == 0 {
		return ""
	}
	names := make([]string, 0, len(referenced))
	for n := range referenced {
		names = append(names, n)
	}
	sort.Strings(names)

	specifiers := make([]string, 0, len(names)*2)
	for _, n := range names {
		ident := types.GoPublicIdent(n)
		specifiers = append(specifiers, ident, ident+"Schema")
	}
	return fmt.Sprintf(`import { %s } from "./types.gen";`, strings.Join(specifiers, ", "))
}
