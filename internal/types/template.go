package types

import "strings"

// Placeholder tokens recognised in email template bodies.
const (
	TokenCompany  = "{empresa}"
	TokenJobTitle = "{cargo}"
	TokenUserName = "{seu_nome}"
)

var tokenAliases = map[string]string{
	"{company}":   TokenCompany,
	"{job_title}": TokenJobTitle,
	"{user_name}": TokenUserName,
}

// EmailTemplate is a reusable outreach message.
type EmailTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"notblank"`
	Body string `json:"body" validate:"notblank"`
}

// Validate checks the template's field rules.
func (t *EmailTemplate) Validate() error {
	return validateEntity("email template", t)
}

// Render substitutes the placeholder tokens in the template body.
func (t EmailTemplate) Render(company, jobTitle, userName string) string {
	body := t.Body
	for alias, token := range tokenAliases {
		body = strings.ReplaceAll(body, alias, token)
	}
	return strings.NewReplacer(
		TokenCompany, company,
		TokenJobTitle, jobTitle,
		TokenUserName, userName,
	).Replace(body)
}

// DefaultEmailTemplate is offered when the user has not created any template.
func DefaultEmailTemplate() EmailTemplate {
	return EmailTemplate{
		ID:   "default",
		Name: "Candidatura espontânea",
		Body: `Prezados recrutadores da {empresa},

Escrevo para expressar meu grande interesse em oportunidades na área de {cargo}.

Encontrei o contato de sua empresa através de uma pesquisa e acredito que minhas habilidades e experiências são compatíveis com o perfil que buscam.

Segue em anexo o meu currículo para sua apreciação.

Agradeço a atenção e coloco-me à disposição.

Atenciosamente,

{seu_nome}
`,
	}
}
