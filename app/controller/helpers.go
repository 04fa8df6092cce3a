package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"mostrador-pos/cart"
	"mostrador-pos/checkout"
	"mostrador-pos/repository"
	"mostrador-pos/service"
	"mostrador-pos/session"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// decodeBody decodes the JSON body into dst and validates its tags.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid request body: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, log *zap.SugaredLogger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("❌ Error encoding response: %v", err)
	}
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v := r.PathValue(name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrSaleNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrInvalidDiscount),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInsufficientPayment),
		errors.Is(err, checkout.ErrInvalidTender),
		errors.Is(err, checkout.ErrOverpayment),
		errors.Is(err, repository.ErrInvalidDate),
		errors.Is(err, repository.ErrInvalidTransaction):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, repository.ErrInsufficientStock),
		errors.Is(err, repository.ErrSaleAlreadyRecorded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status for err. Internal errors keep their
// details in the log only.
func writeError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Errorf("❌ %s: %v", op, err)
		http.Error(w, "Internal server error", status)
		return
	}
	log.Infof("❌ %s: %v", op, err)
	http.Error(w, err.Error(), status)
}
