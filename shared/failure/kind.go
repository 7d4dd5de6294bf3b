package failure

import (
	"errors"
	"hotel/shared/constant"
	"slices"

	"github.com/lib/pq"
)

// Error kinds shared by the provisioner, the seeder and the admission engine.
// Rejection kinds come from AdmissionResult.Err and seed skips; ErrConnection,
// ErrTransactionConflict and ErrSchemaConflict abort the unit of work.
var (
	ErrConnection           = errors.New("store unreachable")
	ErrSchemaConflict       = errors.New("schema object already exists")
	ErrRoomNotFound         = errors.New("room not found")
	ErrGuestNotFound        = errors.New("guest not found")
	ErrInvalidDateRange     = errors.New("check-out date must be after check-in date")
	ErrBookingConflict      = errors.New("room already booked for the requested dates")
	ErrSeedReferenceMissing = errors.New("seed record references a missing row")
	ErrTransactionConflict  = errors.New("transaction aborted by a concurrent update")
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return constant.Empty
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeFkViolation
}

// IsAlreadyExists reports whether err is the store telling us a database, table,
// constraint or unique row we tried to create is already there.
func IsAlreadyExists(err error) bool {
	return slices.Contains([]string{
		constant.PqErrorCodeUniqueViolation,
		constant.PqErrorCodeDuplicateDatabase,
		constant.PqErrorCodeDuplicateTable,
		constant.PqErrorCodeDuplicateObject,
	}, pqCode(err))
}

// IsRetryable reports whether the store aborted the transaction because of a
// concurrent one; the whole unit of work may be retried.
func IsRetryable(err error) bool {
	code := pqCode(err)

	return code == constant.PqErrorCodeSerializationFailure || code == constant.PqErrorCodeDeadlockDetected
}
