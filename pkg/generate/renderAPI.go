package generate

import (
	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/typemap"
	"github.com/leizor/go-onebot-model-generator/pkg/util"
)

// RenderAPIs renders apis as a package of their own.
func RenderAPIs(packageName string, apis []model.APIDefinition) ([]byte, error) {
	return NewPackage(packageName).RenderAPIs(apis)
}

type apiNames struct {
	action   string
	request  string
	response string
}

// RenderAPIs renders an action constant plus a request and a response struct per API.
func (p *Package) RenderAPIs(apis []model.APIDefinition) ([]byte, error) {
	cb := util.NewCodeBuffer()
	p.addFileHeader(cb)

	names := make([]apiNames, len(apis))
	for i, api := range apis {
		base := exportedName(typemap.ToExportedCase(api.Name), "Action")
		names[i] = apiNames{
			action:   p.claim("Action" + base),
			request:  p.claim(base + "Request"),
			response: p.claim(base + "Response"),
		}
	}

	if len(apis) > 0 {
		cb.AddLine("const (")
		cb.IncrementIndent()
		for i, api := range apis {
			cb.AddLine("%s = %q", names[i].action, api.Name)
		}
		cb.DecrementIndent()
		cb.AddLine(")")
		cb.AddBlankLine()
	}

	for i, api := range apis {
		n := names[i]
		desc := plainText(api.Description)
		p.addStruct(cb, n.request, []string{
			n.request + " holds the parameters of " + api.Name + ".",
			desc,
		}, api.Request.Fields)
		p.addStruct(cb, n.response, []string{
			n.response + " holds the response data of " + api.Name + ".",
			desc,
		}, api.Response.Fields)
	}

	return formatSource(cb)
}
