package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica a origem de uma falha da camada de integração
type Kind uint8

const (
	KindValidation Kind = iota + 1 // validação local, antes de qualquer request
	KindTransport                  // conexão recusada, timeout, DNS
	KindUpstream                   // resposta não-2xx do serviço remoto
	KindNotFound                   // 404 reescrito com mensagem de domínio
)

var kindNames = map[Kind]string{
	KindValidation: "validation",
	KindTransport:  "transport",
	KindUpstream:   "upstream",
	KindNotFound:   "not_found",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error é o único formato de falha devolvido pelos clients de integração.
// Details carrega o payload bruto do upstream quando o client está configurado para mantê-lo.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details any
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// HasDetails indica se há payload bruto anexado
func (e *Error) HasDetails() bool { return e.Details != nil }

// Validation cria uma falha de validação local (sempre 400)
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Validationf(format string, a ...any) *Error {
	return Validation(fmt.Sprintf(format, a...))
}

// NotFound cria o 404 de domínio usado nas operações de consulta
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Transport cria uma falha de transporte; status <= 0 vira 500
func Transport(status int, msg string, cause error) *Error {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	return &Error{Kind: KindTransport, Status: status, Message: msg, Cause: cause}
}

// Upstream cria uma falha a partir de uma resposta não-2xx
func Upstream(status int, msg string, details any) *Error {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	return &Error{Kind: KindUpstream, Status: status, Message: msg, Details: details}
}

// As extrai *Error da cadeia de erros
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusCode devolve o status HTTP associado ao erro (500 quando não é *Error)
func StatusCode(err error) int {
	if e, ok := As(err); ok && e.Status > 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// IsKind verifica o tipo sem o chamador precisar fazer errors.As
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
