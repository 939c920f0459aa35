package rollover

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Checker", func() {
	var (
		keys       *mockKeySource
		delegation *mockDelegation
		sut        *Checker
		authority  *resolver.Authority
	)

	BeforeEach(func() {
		keys = &mockKeySource{}
		delegation = &mockDelegation{}
		sut = NewChecker(keys, delegation)

		authority = &resolver.Authority{Zone: "com", Name: "a.gtld-servers.net", Address: "192.0.2.1:53"}
	})

	AfterEach(func() {
		keys.AssertExpectations(GinkgoT())
		delegation.AssertExpectations(GinkgoT())
	})

	It("should combine keys, authority and DS into an evaluation", func() {
		ks := keySet(key(20, active), key(10, retire))
		ds := observed(10, 20)

		keys.On("ZoneKeys", zone).Return(ks, nil)
		delegation.On("FindParentAuthority", zone).Return(authority, nil)
		delegation.On("QueryDs", zone, authority).Return(ds, nil)

		res, err := sut.Check(context.Background(), "Example.COM.")
		Expect(err).Should(Succeed())

		Expect(res.Zone).Should(Equal(zone))
		Expect(res.Keys).Should(BeIdenticalTo(ks))
		Expect(res.Authority).Should(BeIdenticalTo(authority))
		Expect(res.DS).Should(BeIdenticalTo(ds))
		Expect(res.Evaluation.Phase).Should(Equal(PhaseRolloverInProgress))
		Expect(res.Evaluation.Stage).Should(Equal(StageTail))
	})

	It("should fail with zone not found before any DNS query", func() {
		keys.On("ZoneKeys", zone).Return(nil, model.NewZoneNotFoundError(zone))

		res, err := sut.Check(context.Background(), zone)
		Expect(err).Should(MatchError(model.ErrZoneNotFound))
		Expect(model.ExitCode(err)).Should(Equal(model.ExitZoneNotFound))

		Expect(res.Keys).Should(BeNil())
		Expect(res.Evaluation).Should(BeNil())
		delegation.AssertNotCalled(GinkgoT(), "FindParentAuthority", mock.Anything)
	})

	It("should keep the partial walk on a missing delegation", func() {
		partial := &resolver.Authority{Zone: "com", Hops: []resolver.Hop{{QueryName: "com", Rcode: "NXDOMAIN"}}}

		keys.On("ZoneKeys", zone).Return(keySet(key(10, active)), nil)
		delegation.On("FindParentAuthority", zone).
			Return(partial, model.NewDelegationNotFoundError("com", "resolver"))

		res, err := sut.Check(context.Background(), zone)
		Expect(err).Should(MatchError(model.ErrDelegationNotFound))
		Expect(res.Authority.Hops).Should(HaveLen(1))
		Expect(res.Evaluation).Should(BeNil())
		delegation.AssertNotCalled(GinkgoT(), "QueryDs", mock.Anything, mock.Anything)
	})

	It("should pass a failing DS query through", func() {
		keys.On("ZoneKeys", zone).Return(keySet(key(10, active)), nil)
		delegation.On("FindParentAuthority", zone).Return(authority, nil)
		delegation.On("QueryDs", zone, authority).
			Return(nil, model.NewResolutionError(errors.New("connection refused"), "DS query failed"))

		_, err := sut.Check(context.Background(), zone)
		Expect(err).Should(MatchError(model.ErrResolutionFailure))
		Expect(err.Error()).Should(ContainSubstring("connection refused"))
	})

	It("should evaluate a missing DS answer", func() {
		keys.On("ZoneKeys", zone).Return(keySet(key(30, publish)), nil)
		delegation.On("FindParentAuthority", zone).Return(authority, nil)
		delegation.On("QueryDs", zone, authority).
			Return(model.NewNoAnswer(zone, authority.String(), model.NoAnswerNXDomain), nil)

		res, err := sut.Check(context.Background(), zone)
		Expect(err).Should(Succeed())
		Expect(res.Evaluation.Phase).Should(Equal(PhaseAwaitingPublish))
		Expect(res.Evaluation.Stage).Should(Equal(StageManual))
	})

	It("should reject an invalid zone name", func() {
		_, err := sut.Check(context.Background(), "")
		Expect(err).Should(MatchError(model.ErrValidation))
		keys.AssertNotCalled(GinkgoT(), "ZoneKeys", mock.Anything)
	})
})
