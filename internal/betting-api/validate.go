package bettingapi

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/radieske/event-betting-console/internal/betting-api/dto"
	"github.com/radieske/event-betting-console/internal/shared/apierr"
)

const outcomeRule = "oneof=HomeWin AwayWin Draw"

var validate = newValidator()

// newValidator usa o nome do campo JSON nos erros (userId em vez de UserID)
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BetInput são os campos crus do formulário de aposta; string vazia = ausente
type BetInput struct {
	UserID           string `json:"userId" validate:"required"`
	EventID          string `json:"eventId" validate:"required"`
	Amount           string `json:"amount" validate:"required"`
	PredictedOutcome string `json:"predictedOutcome" validate:"required"`
}

func (in BetInput) trimmed() BetInput {
	return BetInput{
		UserID:           strings.TrimSpace(in.UserID),
		EventID:          strings.TrimSpace(in.EventID),
		Amount:           strings.TrimSpace(in.Amount),
		PredictedOutcome: strings.TrimSpace(in.PredictedOutcome),
	}
}

// missingFields devolve todos os campos ausentes, na ordem da struct
func missingFields(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	var out []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			out = append(out, fe.Field())
		}
	}
	return out
}

// isUUID aceita o formato 8-4-4-4-12 em hex, sem diferenciar maiúsculas
func isUUID(s string) bool {
	return validate.Var(strings.ToLower(s), "uuid") == nil
}

func isOutcome(s string) bool {
	return validate.Var(s, outcomeRule) == nil
}

func outcomeList() string {
	names := make([]string, len(dto.Outcomes))
	for i, o := range dto.Outcomes {
		names[i] = string(o)
	}
	return strings.Join(names, ", ")
}

// BuildBetRequest valida na ordem: ausentes, valor, userId, eventId, outcome
func BuildBetRequest(in BetInput) (dto.BetRequest, error) {
	in = in.trimmed()

	if missing := missingFields(in); len(missing) > 0 {
		return dto.BetRequest{}, apierr.Validationf("Missing required bet data: %s", strings.Join(missing, ", "))
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		return dto.BetRequest{}, apierr.Validationf("Bet amount must be a number, got %q.", in.Amount)
	}
	if !amount.IsPositive() {
		return dto.BetRequest{}, apierr.Validation("Bet amount must be greater than 0.")
	}
	// o valor enviado e o float64, nao o decimal
	value, _ := amount.Float64()
	if math.IsInf(value, 0) {
		return dto.BetRequest{}, apierr.Validationf("Bet amount is out of range, got %q.", in.Amount)
	}
	if value <= 0 {
		return dto.BetRequest{}, apierr.Validation("Bet amount must be greater than 0.")
	}

	if !isUUID(in.UserID) {
		return dto.BetRequest{}, apierr.Validation("Invalid format for userId (must be UUID).")
	}
	if !isUUID(in.EventID) {
		return dto.BetRequest{}, apierr.Validation("Invalid format for eventId (must be UUID).")
	}
	if !isOutcome(in.PredictedOutcome) {
		return dto.BetRequest{}, apierr.Validationf("Invalid predictedOutcome value: %s. Must be one of %s", in.PredictedOutcome, outcomeList())
	}

	return dto.BetRequest{
		UserID:           in.UserID,
		EventID:          in.EventID,
		Amount:           value,
		PredictedOutcome: dto.Outcome(in.PredictedOutcome),
	}, nil
}

// BuildFinalizeRequest valida na ordem: ausentes, resultado, eventId
func BuildFinalizeRequest(eventID, result string) (dto.FinalizeRequest, error) {
	eventID, result = strings.TrimSpace(eventID), strings.TrimSpace(result)

	if eventID == "" || result == "" {
		return dto.FinalizeRequest{}, apierr.Validation("Both eventId and result are required to finalize.")
	}
	if !isOutcome(result) {
		return dto.FinalizeRequest{}, apierr.Validationf("Invalid result value: %s. Must be one of %s", result, outcomeList())
	}
	if !isUUID(eventID) {
		return dto.FinalizeRequest{}, apierr.Validation("Invalid format for eventId (must be UUID).")
	}
	return dto.FinalizeRequest{Result: dto.Outcome(result)}, nil
}
