package response

var (
	ErrInvalidRequest = newError(40000, "Invalid request")
	ErrInvalidEmail   = newError(40001, "Invalid email format")
	ErrValidation     = newError(40002, "Validation failed")

	ErrUnauthorized = newError(40100, "Unauthorized")
	ErrTokenInvalid = newError(40101, "Invalid or expired token")

	ErrForbidden = newError(40300, "Forbidden")

	ErrNotFound         = newError(40400, "Not found")
	ErrActivityNotFound = newError(40401, "Activity not found")
	ErrUserNotFound     = newError(40402, "User not found")
	ErrNotEnrolled      = newError(40403, "Student is not signed up for this activity")

	ErrAlreadyExists   = newError(40900, "Already exists")
	ErrAlreadyEnrolled = newError(40901, "Student is already signed up")
	ErrActivityFull    = newError(40902, "Activity is full")
	ErrActivityExists  = newError(40903, "Activity already exists")
	ErrUserExists      = newError(40904, "User already exists")
	ErrBackupRunning   = newError(40905, "Backup already in progress")

	ErrServerInternal = newError(50000, "Internal server error")
	ErrDatabase       = newError(50001, "Database error")
	ErrBackup         = newError(50002, "Error creating database backup")

	ErrUnavailable = newError(50300, "Database connection failed")
)
