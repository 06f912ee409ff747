package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"accounts-service/internal/api/handler/dto"
	"accounts-service/internal/domain/account"
	"accounts-service/internal/pkg/apperrors"
)

type AccountHandler struct {
	service account.AccountService
	logger  *slog.Logger
}

func NewAccountHandler(s account.AccountService, l *slog.Logger) *AccountHandler {
	if s == nil {
		panic("account service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AccountHandler{
		service: s,
		logger:  l.With("component", "AccountHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError is the single place where service errors become HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var notFoundError *apperrors.NotFoundError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &notFoundError):
		status, message = http.StatusNotFound, notFoundError.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized."
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

// CreateAccount handles POST /api/create
// @Summary Create a new customer and account
// @Description Registers a customer by mobile number and opens a savings account with a generated account number.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer creation request"
// @Success 201 {object} dto.StatusResponse "Account successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or customer already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error during creation"
// @Router /api/create [post]
// @Security BearerAuth
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create account request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.logger.DebugContext(r.Context(), "Calling account service CreateAccount")
	if err := h.service.CreateAccount(r.Context(), req.ToCustomerDetails()); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrAlreadyExists) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to create account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account created successfully", slog.String("mobileNumber", req.MobileNumber))
	respondJSON(w, http.StatusCreated, dto.StatusResponse{
		StatusCode: dto.StatusCreated,
		StatusMsg:  dto.MessageCreated,
	})
}

// FetchAccountDetails handles GET /api/fetchAccountDetails
// @Summary Fetch customer and account details
// @Description Retrieves the customer and their account keyed by mobile number.
// @Tags Accounts
// @Produce json
// @Param mobileNumber query string true "Registered mobile number (10 digits)"
// @Success 200 {object} dto.CustomerDetailsResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number format"
// @Failure 404 {object} dto.ErrorResponse "Customer or account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/fetchAccountDetails [get]
// @Security BearerAuth
func (h *AccountHandler) FetchAccountDetails(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received fetch account details request")

	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := dto.ValidateMobileNumber(mobileNumber); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid mobileNumber query parameter", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.logger.DebugContext(r.Context(), "Calling account service FetchAccount")
	details, err := h.service.FetchAccount(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to fetch account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Account details retrieved successfully")
	respondJSON(w, http.StatusOK, dto.NewCustomerDetailsResponse(details))
}

// UpdateAccountDetails handles PUT /api/update
// @Summary Update customer and account details
// @Description Updates account type, branch address and customer fields for the account named in the payload. A payload without an account section is reported as a failed update.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer update request with account details"
// @Success 200 {object} dto.StatusResponse "Update processed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 404 {object} dto.ErrorResponse "Customer or account not found"
// @Failure 500 {object} dto.StatusResponse "Update operation failed"
// @Router /api/update [put]
// @Security BearerAuth
func (h *AccountHandler) UpdateAccountDetails(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received update account details request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.logger.DebugContext(r.Context(), "Calling account service UpdateAccount")
	updated, err := h.service.UpdateAccount(r.Context(), req.ToCustomerDetails())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if !updated {
		h.logger.WarnContext(r.Context(), "Update was not applicable", slog.String("mobileNumber", req.MobileNumber))
		respondJSON(w, http.StatusInternalServerError, dto.StatusResponse{
			StatusCode: dto.StatusFailed,
			StatusMsg:  dto.MessageUpdateFailed,
		})
		return
	}

	h.logger.InfoContext(r.Context(), "Account updated successfully", slog.String("mobileNumber", req.MobileNumber))
	respondJSON(w, http.StatusOK, dto.StatusResponse{
		StatusCode: dto.StatusOK,
		StatusMsg:  dto.MessageOK,
	})
}

// DeleteAccountDetails handles DELETE /api/delete
// @Summary Delete customer and account details
// @Description Removes the customer and every account held by them, keyed by mobile number.
// @Tags Accounts
// @Produce json
// @Param mobileNumber query string true "Registered mobile number (10 digits)"
// @Success 200 {object} dto.StatusResponse "Delete processed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid mobile number format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.StatusResponse "Delete operation failed"
// @Router /api/delete [delete]
// @Security BearerAuth
func (h *AccountHandler) DeleteAccountDetails(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received delete account details request")

	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := dto.ValidateMobileNumber(mobileNumber); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid mobileNumber query parameter", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	h.logger.DebugContext(r.Context(), "Calling account service DeleteAccount")
	deleted, err := h.service.DeleteAccount(r.Context(), mobileNumber)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to delete account", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if !deleted {
		h.logger.WarnContext(r.Context(), "Delete was not applicable", slog.String("mobileNumber", mobileNumber))
		respondJSON(w, http.StatusInternalServerError, dto.StatusResponse{
			StatusCode: dto.StatusFailed,
			StatusMsg:  dto.MessageDeleteFailed,
		})
		return
	}

	h.logger.InfoContext(r.Context(), "Account deleted successfully", slog.String("mobileNumber", mobileNumber))
	respondJSON(w, http.StatusOK, dto.StatusResponse{
		StatusCode: dto.StatusOK,
		StatusMsg:  dto.MessageOK,
	})
}

// Hello handles GET /api/hello
// @Summary Service greeting
// @Description Simple liveness endpoint returning a greeting.
// @Tags Accounts
// @Produce plain
// @Success 200 {string} string "Greeting"
// @Router /api/hello [get]
// @Security BearerAuth
func (h *AccountHandler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello from Accounts Service"))
}
