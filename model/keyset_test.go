package model

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ksk(tag uint16, state KeyState) Key {
	k, err := NewKey(KeyParams{Type: KeyTypeKSK, Tag: tag, State: state, Algorithm: 13, Bits: 256})
	Expect(err).Should(Succeed())

	return k
}

var _ = Describe("ZoneKeySet", func() {
	It("should re-enumerate every key exactly once through the state accessors", func() {
		keys := []Key{
			ksk(100, KeyStatePublish),
			ksk(200, KeyStateReady),
			ksk(300, KeyStateActive),
			ksk(400, KeyStateRetire),
			ksk(50, KeyStateRetire),
		}

		sut, err := NewZoneKeySet("example.com", keys)
		Expect(err).Should(Succeed())
		Expect(sut.Len()).Should(Equal(len(keys)))

		var seen []uint16

		for _, accessor := range []func() (Key, bool){sut.PublishKey, sut.ReadyKey, sut.ActiveKey} {
			k, ok := accessor()
			Expect(ok).Should(BeTrue())

			seen = append(seen, k.Tag)
		}

		for _, k := range sut.RetiredKeys() {
			seen = append(seen, k.Tag)
		}

		Expect(seen).Should(HaveLen(len(keys)))
		Expect(seen).Should(ConsistOf(uint16(100), uint16(200), uint16(300), uint16(400), uint16(50)))
	})

	It("should order retired keys by tag", func() {
		sut, err := NewZoneKeySet("example.com", []Key{ksk(9, KeyStateRetire), ksk(3, KeyStateRetire)})
		Expect(err).Should(Succeed())

		retired := sut.RetiredKeys()
		Expect(retired).Should(HaveLen(2))
		Expect(retired[0].Tag).Should(Equal(uint16(3)))
		Expect(retired[1].Tag).Should(Equal(uint16(9)))
	})

	It("should report absent states", func() {
		sut, err := NewZoneKeySet("example.com", []Key{ksk(1, KeyStateActive)})
		Expect(err).Should(Succeed())

		_, ok := sut.PublishKey()
		Expect(ok).Should(BeFalse())
		_, ok = sut.ReadyKey()
		Expect(ok).Should(BeFalse())
		Expect(sut.RetiredKeys()).Should(BeEmpty())
	})

	It("should reject duplicate tags", func() {
		_, err := NewZoneKeySet("example.com", []Key{ksk(1, KeyStateActive), ksk(1, KeyStateRetire)})
		Expect(err).Should(MatchError(ErrValidation))
		Expect(err.Error()).Should(ContainSubstring("duplicate key tag 1"))
	})

	It("should keep two active keys and pick the lowest tag", func() {
		sut, err := NewZoneKeySet("example.com", []Key{ksk(2, KeyStateActive), ksk(1, KeyStateActive)})
		Expect(err).Should(Succeed())

		active, ok := sut.ActiveKey()
		Expect(ok).Should(BeTrue())
		Expect(active.Tag).Should(Equal(uint16(1)))
		Expect(sut.KeysIn(KeyStateActive)).Should(HaveLen(2))
		Expect(sut.ConflictingStates()).Should(Equal([]KeyState{KeyStateActive}))
	})

	It("should not count retired keys as conflicting", func() {
		sut, err := NewZoneKeySet("example.com", []Key{
			ksk(1, KeyStateRetire), ksk(2, KeyStateRetire), ksk(3, KeyStatePublish), ksk(4, KeyStatePublish),
		})
		Expect(err).Should(Succeed())

		Expect(sut.ConflictingStates()).Should(Equal([]KeyState{KeyStatePublish}))
	})

	It("should reject ZSKs", func() {
		zsk, err := NewKey(KeyParams{Type: KeyTypeZSK, Tag: 7, State: KeyStateActive, Algorithm: 8})
		Expect(err).Should(Succeed())

		_, err = NewZoneKeySet("example.com", []Key{zsk})
		Expect(err).Should(MatchError(ErrValidation))
	})

	It("should attach exported DS material", func() {
		ds := DSRecord{KeyTag: 200, Algorithm: 13, DigestType: 2, Digest: "abcd"}

		sut, err := NewZoneKeySet("example.com", []Key{ksk(200, KeyStateReady)}, WithExportedDS(ds))
		Expect(err).Should(Succeed())

		Expect(sut.ExportedDS(200)).Should(ConsistOf(ds))
		Expect(sut.ExportedDS(201)).Should(BeNil())

		k, ok := sut.Key(200)
		Expect(ok).Should(BeTrue())

		dt, ok := k.DSDigestType()
		Expect(ok).Should(BeTrue())
		Expect(dt).Should(Equal(DigestType(2)))
	})
})
