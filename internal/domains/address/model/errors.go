package model

import (
	"errors"
	"fmt"
	"net/http"
)

// AddressError định nghĩa base error cho address domain
type AddressError struct {
	Code    string
	Message string
	Err     error
}

// Error implements error interface
func (e *AddressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *AddressError) Unwrap() error {
	return e.Err
}

const (
	CodeAddressNotFound = "ADDRESS_NOT_FOUND"
	CodeInvalidCountry  = "INVALID_COUNTRY"
	CodeInvalidProvince = "INVALID_PROVINCE"
	CodeInvalidCity     = "INVALID_CITY"
	CodeInvalidDistrict = "INVALID_DISTRICT"
	CodeCreateAddress   = "CREATE_ADDRESS_ERROR"
	CodeUpdateAddress   = "UPDATE_ADDRESS_ERROR"
	CodeDeleteAddress   = "DELETE_ADDRESS_ERROR"
)

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewAddressNotFound dùng cả khi address thuộc user khác
func NewAddressNotFound() *AddressError {
	return &AddressError{Code: CodeAddressNotFound, Message: "Address does not exist"}
}

func NewInvalidCountry(id int64) *AddressError {
	return &AddressError{Code: CodeInvalidCountry, Message: fmt.Sprintf("Country %d does not exist", id)}
}

func NewInvalidProvince(id int64) *AddressError {
	return &AddressError{Code: CodeInvalidProvince, Message: fmt.Sprintf("The selected province %d does not exist", id)}
}

func NewInvalidCity(id int64) *AddressError {
	return &AddressError{Code: CodeInvalidCity, Message: fmt.Sprintf("The selected city %d does not exist", id)}
}

func NewInvalidDistrict(id int64) *AddressError {
	return &AddressError{Code: CodeInvalidDistrict, Message: fmt.Sprintf("The selected district %d does not exist", id)}
}

func NewCreateAddressError(err error) *AddressError {
	return &AddressError{Code: CodeCreateAddress, Message: "Failed to create address", Err: err}
}

func NewUpdateAddressError(err error) *AddressError {
	return &AddressError{Code: CodeUpdateAddress, Message: "Failed to update address", Err: err}
}

func NewDeleteAddressError(err error) *AddressError {
	return &AddressError{Code: CodeDeleteAddress, Message: "Failed to delete address", Err: err}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsAddressNotFound(err error) bool {
	return GetErrorCode(err) == CodeAddressNotFound
}

func IsDomainError(err error) bool {
	var addrErr *AddressError
	return errors.As(err, &addrErr)
}

func GetErrorCode(err error) string {
	var addrErr *AddressError
	if errors.As(err, &addrErr) {
		return addrErr.Code
	}
	return "INTERNAL_ERROR"
}

// MapErrorToHTTP trả về status, code, message
func MapErrorToHTTP(err error) (int, string, string) {
	var addrErr *AddressError
	if !errors.As(err, &addrErr) {
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}

	switch addrErr.Code {
	case CodeAddressNotFound:
		return http.StatusNotFound, addrErr.Code, addrErr.Message
	case CodeInvalidCountry, CodeInvalidProvince, CodeInvalidCity, CodeInvalidDistrict:
		return http.StatusBadRequest, addrErr.Code, addrErr.Message
	default:
		return http.StatusInternalServerError, addrErr.Code, addrErr.Message
	}
}
