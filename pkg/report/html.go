package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

const htmlTemplate = `<section class="validation-report {% if report.Valid %}is-valid{% else %}is-invalid{% endif %}">
<h2>Validation report</h2>
{% if report.Valid %}<p class="status">All fields are valid.</p>{% else %}<p class="status">{{ report.ErrorCount }} error{{ report.ErrorCount|pluralize }} found.</p>{% endif %}
{% if report.Form or report.Dataset %}<h3>Dataset</h3>
<ul>{% for msg in report.Form %}<li>{{ msg }}</li>{% endfor %}{% for msg in report.Dataset %}<li>{{ msg }}</li>{% endfor %}</ul>
{% endif %}{% if report.Project %}<h3>Project</h3>
<ul>{% for e in report.Project %}<li><strong>{{ e.Label }}</strong>: {{ e.Messages|join:"; " }}</li>{% endfor %}</ul>
{% endif %}{% if report.Samples %}<h3>Samples</h3>
<table>
<thead><tr><th>Row</th><th>Sample</th><th>Field</th><th>Messages</th></tr></thead>
<tbody>{% for group in report.Samples %}{% for e in group.Entries %}
<tr><td>{{ group.Row }}</td><td>{{ group.Name }}</td><td>{{ e.Label }}</td><td>{{ e.Messages|join:"; " }}</td></tr>{% endfor %}{% endfor %}
</tbody>
</table>
{% endif %}</section>
`

var (
	htmlOnce   sync.Once
	htmlTpl    *pongo2.Template
	htmlTplErr error
	htmlPolicy *bluemonday.Policy
)

func htmlAssets() (*pongo2.Template, *bluemonday.Policy, error) {
	htmlOnce.Do(func() {
		htmlTpl, htmlTplErr = pongo2.FromString(htmlTemplate)

		policy := bluemonday.UGCPolicy()
		policy.AllowElements("section")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("section", "p")
		htmlPolicy = policy
	})
	return htmlTpl, htmlPolicy, htmlTplErr
}

// RenderHTML renders rep as an HTML fragment. Template output is escaped by
// pongo2 and passed through a bluemonday policy before it is returned.
func RenderHTML(rep Report) (string, error) {
	tpl, policy, err := htmlAssets()
	if err != nil {
		return "", fmt.Errorf("report: parse template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context{"report": rep})
	if err != nil {
		return "", fmt.Errorf("report: render: %w", err)
	}
	return strings.TrimSpace(policy.Sanitize(out)), nil
}

// WriteHTML renders rep into w.
func WriteHTML(w io.Writer, rep Report) error {
	out, err := RenderHTML(rep)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}
