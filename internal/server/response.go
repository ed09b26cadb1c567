package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	classdomain "github.com/edupointlabs/edupoint/internal/class/domain"
	contractdomain "github.com/edupointlabs/edupoint/internal/contract/domain"
	enrollmentdomain "github.com/edupointlabs/edupoint/internal/enrollment/domain"
	payrolldomain "github.com/edupointlabs/edupoint/internal/payroll/domain"
	ratedomain "github.com/edupointlabs/edupoint/internal/rateconfig/domain"
	studentdomain "github.com/edupointlabs/edupoint/internal/student/domain"
	wsdomain "github.com/edupointlabs/edupoint/internal/worksession/domain"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string { return e.Code }

func newValidationError(code, message string) apiError {
	return apiError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// AbortWithError maps domain sentinels onto HTTP statuses. Unknown errors
// are internal.
func AbortWithError(c *gin.Context, err error) {
	var ae apiError
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(ae.Status, gin.H{"error": ae})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, contractdomain.ErrContractNotFound),
		errors.Is(err, studentdomain.ErrStudentNotFound),
		errors.Is(err, classdomain.ErrClassNotFound),
		errors.Is(err, wsdomain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, contractdomain.ErrInvalidTransition),
		errors.Is(err, contractdomain.ErrNoLineItems),
		errors.Is(err, contractdomain.ErrStudentRequired),
		errors.Is(err, studentdomain.ErrNegativeAmount),
		errors.Is(err, enrollmentdomain.ErrZeroAdjustment),
		errors.Is(err, wsdomain.ErrNotPending),
		errors.Is(err, wsdomain.ErrNotConfirmed),
		errors.Is(err, wsdomain.ErrEmptyBatch),
		errors.Is(err, ratedomain.ErrOverlappingTiers),
		errors.Is(err, ratedomain.ErrUnorderedTiers),
		errors.Is(err, ratedomain.ErrNoTiers),
		errors.Is(err, ratedomain.ErrInvalidRangeType),
		errors.Is(err, payrolldomain.ErrInvalidPeriod):
		status = http.StatusUnprocessableEntity
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"message": err.Error()}})
}
