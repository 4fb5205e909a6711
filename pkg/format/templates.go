package format

// Template data structures

type moduleTemplateData struct {
	Bindings []moduleBinding
	Object   string
}

type moduleBinding struct {
	Name string
	Path string
	Expr string
}

// TypeScript route module template
var moduleTemplate = `// Code generated by routemap. DO NOT EDIT.
{{- range .Bindings}}

// {{.Path}}
export const {{.Name}} = {{.Expr}};
{{- end}}

export const routes = {{.Object}} as const;

export default routes;
`
