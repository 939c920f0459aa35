package model

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	DescribeTable("exit codes",
		func(err error, code int) {
			Expect(ExitCode(err)).Should(Equal(code))
		},
		Entry("success", nil, ExitOK),
		Entry("zone not found", NewZoneNotFoundError("example.com"), ExitZoneNotFound),
		Entry("delegation not found", NewDelegationNotFoundError("example.com.", "192.0.2.1:53"), ExitDelegationNotFound),
		Entry("resolution failure", NewResolutionError(errors.New("i/o timeout"), "NS example.com."), ExitResolutionFailure),
		Entry("validation", NewValidationError("bad"), ExitValidation),
		Entry("wrapped", fmt.Errorf("check: %w", NewZoneNotFoundError("example.com")), ExitZoneNotFound),
		Entry("other", errors.New("boom"), ExitFailure),
	)

	It("should keep the cause reachable", func() {
		cause := errors.New("i/o timeout")
		err := NewResolutionError(cause, "NS %s", "com.")

		Expect(errors.Is(err, cause)).Should(BeTrue())
		Expect(errors.Is(err, ErrResolutionFailure)).Should(BeTrue())
		Expect(errors.Is(err, ErrDelegationNotFound)).Should(BeFalse())
		Expect(err.Error()).Should(Equal("resolution failure: NS com.: i/o timeout"))
	})
})
