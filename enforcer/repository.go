package enforcer

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/util"
)

// KeyRepository builds the validated KSK set of a zone from the enforcer
type KeyRepository struct {
	enforcer Enforcer
}

// NewKeyRepository creates a repository backed by enforcer
func NewKeyRepository(enforcer Enforcer) *KeyRepository {
	return &KeyRepository{enforcer: enforcer}
}

// ZoneKeys returns the KSKs of zone. A zone without any KSK is reported as ErrZoneNotFound,
// keys the model rejects as ErrValidation. DS exports are best effort.
func (r *KeyRepository) ZoneKeys(ctx context.Context, zone string) (*model.ZoneKeySet, error) {
	z, err := util.ValidateZone(zone)
	if err != nil {
		return nil, model.NewValidationError("%s", err)
	}

	ctx, logger := log.CtxWithFields(ctx, logrus.Fields{"prefix": enforcerLogPrefix, "zone": z})

	rows, err := r.enforcer.ListKeys(ctx, z)
	if err != nil {
		return nil, err
	}

	keys := make([]model.Key, 0, len(rows))

	for _, row := range rows {
		if row.Zone != z {
			continue
		}

		kt, err := model.ParseKeyType(row.KeyType)
		if err != nil || kt != model.KeyTypeKSK {
			logger.Debugf("ignoring %s key %d", row.KeyType, row.KeyTag)

			continue
		}

		key, err := keyFromRow(row)
		if err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, model.NewZoneNotFoundError(z)
	}

	logger.Debugf("enforcer lists %d KSK(s)", len(keys))

	set, err := model.NewZoneKeySet(z, keys)
	if err != nil {
		return nil, err
	}

	opts := r.exportedDS(ctx, set)
	if len(opts) == 0 {
		return set, nil
	}

	return model.NewZoneKeySet(z, keys, opts...)
}

func keyFromRow(row KeyRow) (model.Key, error) {
	state, err := model.ParseKeyState(row.State)
	if err != nil {
		return model.Key{}, model.NewValidationError("key %d: %s", row.KeyTag, err)
	}

	alg, err := model.ParseAlgorithm(row.Algorithm)
	if err != nil {
		return model.Key{}, model.NewValidationError("key %d: %s", row.KeyTag, err)
	}

	return model.NewKey(model.KeyParams{
		Type:           model.KeyTypeKSK,
		Tag:            row.KeyTag,
		State:          state,
		Algorithm:      alg,
		Bits:           row.Bits,
		NextTransition: row.NextTransition,
	})
}

func (r *KeyRepository) exportedDS(ctx context.Context, set *model.ZoneKeySet) []model.KeySetOption {
	logger := log.FromCtx(ctx)

	var opts []model.KeySetOption

	for _, state := range []model.KeyState{model.KeyStatePublish, model.KeyStateReady, model.KeyStateActive} {
		keys := set.KeysIn(state)
		if len(keys) == 0 {
			continue
		}

		rows, err := r.enforcer.ExportDS(ctx, set.Zone(), state)
		if err != nil {
			logger.Warnf("can't export DS of %s keys, continuing without: %s", state, log.EscapeInput(err.Error()))

			continue
		}

		for _, key := range keys {
			if records := exportedOf(rows, set.Zone(), key); len(records) > 0 {
				opts = append(opts, model.WithExportedDS(records...))
			} else {
				logger.Debugf("enforcer exported no DS for %s key %d", state, key.Tag)
			}
		}
	}

	return opts
}

// exportedOf returns the exported records of key, strongest digest first as it determines the
// digest type of the key
func exportedOf(rows []DSRow, zone string, key model.Key) []model.DSRecord {
	var records []model.DSRecord

	for _, row := range rows {
		if row.Owner == zone && row.Record.KeyTag == key.Tag {
			records = append(records, row.Record)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DigestType > records[j].DigestType
	})

	return records
}
