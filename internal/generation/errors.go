package generation

import "fmt"

// Operation names, used for error reporting, logs and metrics.
const (
	OpOptimizeCV       = "optimize_cv"
	OpCoverLetter      = "cover_letter"
	OpAnalyzeCV        = "analyze_cv"
	OpChat             = "chat"
	OpFindLeads        = "find_leads"
	OpLayoutSuggestion = "layout_suggestions"
	OpApplyLayout      = "apply_layout"
	OpEnhancePhoto     = "enhance_photo"
)

// userMessages are shown to the user when an operation fails.
var userMessages = map[string]string{
	OpOptimizeCV:       "Falha ao otimizar o currículo.",
	OpCoverLetter:      "Falha ao gerar a carta de apresentação.",
	OpAnalyzeCV:        "Falha ao analisar o currículo.",
	OpChat:             "Falha ao obter a resposta do chat.",
	OpFindLeads:        "Falha ao buscar leads.",
	OpLayoutSuggestion: "Falha ao sugerir modelos de currículo.",
	OpApplyLayout:      "Falha ao aplicar o modelo ao currículo.",
	OpEnhancePhoto:     "Falha ao aprimorar a foto.",
}

// Error is the single failure type of every generation operation.
// Message is safe to show to the user; Cause carries the underlying failure.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func newError(op string, cause error) *Error {
	msg, ok := userMessages[op]
	if !ok {
		msg = "Falha na geração."
	}
	return &Error{Op: op, Message: msg, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
