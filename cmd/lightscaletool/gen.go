package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"text/template"

	"github.com/vearutop/lightscale"
)

type genOptions struct {
	Lang    string // "go" or "c"
	Name    string // table identifier
	Package string // Go package clause
}

type genData struct {
	genOptions

	Config   lightscale.Config
	Segments []lightscale.Segment
	Wide     bool // 32-bit fields
	StepBits int
	Identity bool
	GoType   string
	CType    string
}

var goTemplate = template.Must(template.New("go").Parse(`// Code generated by lightscaletool gen; DO NOT EDIT.
// max in {{.Config.MaxIn}}, max out {{.Config.MaxOut}}, invert {{.Config.InvertOut}}, gamma {{.Config.Gamma}}

package {{.Package}}
{{if .Identity}}
// {{.Name}}Value passes intensity through unchanged.
func {{.Name}}Value(intensity uint) int64 {
	return int64(intensity)
}
{{else}}
// {{.Name}} holds {scale, offset} pairs with 8 fractional bits.
var {{.Name}} = [{{len .Segments}}][2]{{.GoType}}{
{{- range .Segments}}
	{ {{- .Scale}}, {{.Offset -}} },
{{- end}}
}

// {{.Name}}Value maps intensity to an output value, results are not clamped.
func {{.Name}}Value(intensity uint) int64 {
{{- if eq (len .Segments) 1}}
	c := {{.Name}}[0]
{{- else}}
	i := int(intensity >> {{.StepBits}})
	if i >= len({{.Name}}) {
		i = len({{.Name}}) - 1
	}

	c := {{.Name}}[i]
{{- end}}

	return (int64(intensity)*int64(c[0]) + int64(c[1]) + 0x80) >> 8
}
{{end}}`))

var cTemplate = template.Must(template.New("c").Parse(`/* Code generated by lightscaletool gen; DO NOT EDIT. */
/* max in {{.Config.MaxIn}}, max out {{.Config.MaxOut}}, invert {{.Config.InvertOut}}, gamma {{.Config.Gamma}} */

#include <stdint.h>
{{if .Identity}}
static inline uint32_t {{.Name}}_value(uint32_t intensity)
{
    return intensity;
}
{{else}}
/* {scale, offset} pairs with 8 fractional bits. */
static const {{.CType}} {{.Name}}[{{len .Segments}}][2] = {
{{- range .Segments}}
    { {{- .Scale}}, {{.Offset -}} },
{{- end}}
};

/* Maps intensity to an output value, results are not clamped. */
static inline int32_t {{.Name}}_value(uint32_t intensity)
{
{{- if eq (len .Segments) 1}}
    uint32_t i = 0;
{{- else}}
    uint32_t i = intensity >> {{.StepBits}};
    if (i >= {{len .Segments}}u) {
        i = {{len .Segments}}u - 1u;
    }
{{- end}}
    int64_t v = (int64_t)intensity * {{.Name}}[i][0] + {{.Name}}[i][1];

    return (int32_t)((v + 0x80) >> 8);
}
{{end}}`))

// generate renders the segment table of s as source code for firmware that
// evaluates the curve without the builder.
func generate(s *lightscale.Scale, opt genOptions) ([]byte, error) {
	if !token.IsIdentifier(opt.Name) {
		return nil, fmt.Errorf("%w: invalid table name %q", errUsage, opt.Name)
	}
	d := genData{
		genOptions: opt,
		Config:     s.Config(),
		Segments:   s.Segments(),
		Wide:       !s.Fits16(),
		StepBits:   lightscale.StepBits,
		Identity:   s.IsIdentity(),
		GoType:     "int16",
		CType:      "int16_t",
	}
	if d.Wide {
		d.GoType = "int32"
		d.CType = "int32_t"
	}
	var buf bytes.Buffer
	switch opt.Lang {
	case "go":
		if !token.IsIdentifier(opt.Package) {
			return nil, fmt.Errorf("%w: invalid package name %q", errUsage, opt.Package)
		}
		if err := goTemplate.Execute(&buf, d); err != nil {
			return nil, err
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format generated source: %w", err)
		}
		return src, nil
	case "c":
		if err := cTemplate.Execute(&buf, d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unknown language %q", errUsage, opt.Lang)
	}
}
