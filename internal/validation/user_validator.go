package validation

// UserValidator provides validation for signup and credential operations
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{
		validator: NewValidator(),
	}
}

// ValidateSignup validates the fields of a signup request
func (uv *UserValidator) ValidateSignup(username, email, password, confirmPassword string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(username) {
		validationError.AddRequiredError("username")
	} else if !uv.validator.IsValidStringLength(username, 3, 64) {
		validationError.AddInvalidLengthError("username", username, 3, 64)
	}

	if !uv.validator.IsNonEmptyString(email) {
		validationError.AddRequiredError("email")
	} else if !uv.validator.IsValidEmail(email) {
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	}

	if !uv.validator.IsNonEmptyString(password) {
		validationError.AddRequiredError("password")
	} else if len(password) < 8 {
		validationError.AddInvalidLengthError("password", nil, 8, 72)
	}

	if password != confirmPassword {
		validationError.AddMismatchError("confirm_password", "password")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidatePasswordChange validates a new password and its confirmation
func (uv *UserValidator) ValidatePasswordChange(password, confirmPassword string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(password) {
		validationError.AddRequiredError("password")
	} else if len(password) < 8 {
		validationError.AddInvalidLengthError("password", nil, 8, 72)
	}

	if password != confirmPassword {
		validationError.AddMismatchError("confirm_password", "password")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateEmail validates a bare email address
func (uv *UserValidator) ValidateEmail(email string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(email) {
		validationError.AddRequiredError("email")
	} else if !uv.validator.IsValidEmail(email) {
		validationError.AddInvalidFormatError("email", email, "name@example.com")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
