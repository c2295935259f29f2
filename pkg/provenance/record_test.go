package provenance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() Record {
	return Record{
		ModelID:        "llama-3.1-8b",
		ModelVersion:   "1.0.0",
		ProviderID:     "ollama",
		ModelType:      "base",
		BaseModel:      "llama-3.1-8b",
		GovernanceTier: "standard",
		WeightsHash:    "deadbeef",
		RiskLevel:      "low",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("minimal", func(t *testing.T) {
		t.Parallel()
		r, err := New("phi3-mini")
		require.NoError(t, err)
		assert.Equal(t, Record{ModelID: "phi3-mini"}, r)
	})

	t.Run("all options", func(t *testing.T) {
		t.Parallel()
		r, err := New("llama-3.1-8b",
			WithModelVersion("1.0.0"),
			WithProviderID("ollama"),
			WithModelType("base"),
			WithBaseModel("llama-3.1-8b"),
			WithGovernanceTier("standard"),
			WithWeightsHash("deadbeef"),
			WithRiskLevel("low"),
		)
		require.NoError(t, err)
		assert.Equal(t, fullRecord(), r)
	})

	t.Run("empty model id rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRecord))
	})
}

func TestFullMap(t *testing.T) {
	t.Parallel()

	t.Run("only model_id", func(t *testing.T) {
		t.Parallel()
		r := Record{ModelID: "test"}
		assert.Equal(t, Map{{Key: "model_id", Value: "test"}}, r.FullMap())
	})

	t.Run("omits empty fields", func(t *testing.T) {
		t.Parallel()
		r := Record{ModelID: "phi3", ProviderID: "local", GovernanceTier: "standard"}
		m := r.FullMap()
		assert.Equal(t, Map{
			{Key: "model_id", Value: "phi3"},
			{Key: "provider_id", Value: "local"},
			{Key: "governance_tier", Value: "standard"},
		}, m)
		for _, key := range []string{"model_version", "model_type", "base_model", "weights_hash", "risk_level"} {
			assert.False(t, m.Has(key), "empty field %q should be omitted", key)
		}
	})

	t.Run("all fields in declaration order", func(t *testing.T) {
		t.Parallel()
		m := fullRecord().FullMap()
		keys := make([]string, len(m))
		for i, f := range m {
			keys[i] = f.Key
		}
		assert.Equal(t, []string{
			"model_id", "model_version", "provider_id", "model_type",
			"base_model", "governance_tier", "weights_hash", "risk_level",
		}, keys)
	})

	t.Run("zero record yields empty map", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Record{}.FullMap())
	})
}

func TestRegistryExtension(t *testing.T) {
	t.Parallel()

	t.Run("default key", func(t *testing.T) {
		t.Parallel()
		r := Record{ModelID: "phi3-mini", ProviderID: "local"}
		ext := r.RegistryExtension("")
		require.Contains(t, ext, DefaultExtensionKey)
		assert.Equal(t, "phi3-mini", ext[DefaultExtensionKey].Get("model_id"))
		assert.Equal(t, "local", ext[DefaultExtensionKey].Get("provider_id"))
	})

	t.Run("custom key replaces default", func(t *testing.T) {
		t.Parallel()
		ext := Record{ModelID: "test"}.RegistryExtension("x_custom")
		require.Len(t, ext, 1)
		require.Contains(t, ext, "x_custom")
		assert.NotContains(t, ext, DefaultExtensionKey)
		assert.Equal(t, "test", ext["x_custom"].Get("model_id"))
	})

	t.Run("custom key is not validated", func(t *testing.T) {
		t.Parallel()
		ext := Record{ModelID: "test"}.RegistryExtension("no_x_prefix")
		assert.Contains(t, ext, "no_x_prefix")
	})
}

func TestProfileMetadata(t *testing.T) {
	t.Parallel()

	t.Run("fixed model_info key", func(t *testing.T) {
		t.Parallel()
		r := Record{ModelID: "llama-3.1-8b", ProviderID: "ollama"}
		meta := r.ProfileMetadata()
		require.Len(t, meta, 1)
		require.Contains(t, meta, "model_info")
		assert.Equal(t, Map{
			{Key: "model_id", Value: "llama-3.1-8b"},
			{Key: "provider_id", Value: "ollama"},
		}, meta["model_info"])
	})

	t.Run("minimal record", func(t *testing.T) {
		t.Parallel()
		meta := Record{ModelID: "test-model"}.ProfileMetadata()
		assert.Equal(t, Map{{Key: "model_id", Value: "test-model"}}, meta["model_info"])
	})
}

func TestMinimalAuditFields(t *testing.T) {
	t.Parallel()

	t.Run("all three present", func(t *testing.T) {
		t.Parallel()
		r := Record{ModelID: "phi3-mini", ModelVersion: "3.8b", ProviderID: "local"}
		assert.Equal(t, Map{
			{Key: "model_id", Value: "phi3-mini"},
			{Key: "model_version", Value: "3.8b"},
			{Key: "provider_id", Value: "local"},
		}, r.MinimalAuditFields())
	})

	t.Run("omits empty", func(t *testing.T) {
		t.Parallel()
		m := Record{ModelID: "phi3-mini"}.MinimalAuditFields()
		assert.Equal(t, Map{{Key: "model_id", Value: "phi3-mini"}}, m)
	})

	t.Run("never includes other fields", func(t *testing.T) {
		t.Parallel()
		r := Record{
			ModelID:        "llama",
			ModelType:      "base",
			GovernanceTier: "regulated",
			WeightsHash:    "abc",
			RiskLevel:      "high",
		}
		m := r.MinimalAuditFields()
		assert.Equal(t, Map{{Key: "model_id", Value: "llama"}}, m)
		for _, f := range m {
			assert.Contains(t, []string{"model_id", "model_version", "provider_id"}, f.Key)
		}
	})

	t.Run("empty model id omitted", func(t *testing.T) {
		t.Parallel()
		m := Record{ProviderID: "ollama"}.MinimalAuditFields()
		assert.Equal(t, Map{{Key: "provider_id", Value: "ollama"}}, m)
	})
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	t.Run("minimal", func(t *testing.T) {
		t.Parallel()
		r, err := FromMap(map[string]string{"model_id": "test"})
		require.NoError(t, err)
		assert.Equal(t, Record{ModelID: "test"}, r)
	})

	t.Run("full round trip", func(t *testing.T) {
		t.Parallel()
		original := fullRecord()
		rebuilt, err := FromMap(original.FullMap().AsMap())
		require.NoError(t, err)
		assert.Equal(t, original, rebuilt)
	})

	t.Run("sparse round trip", func(t *testing.T) {
		t.Parallel()
		original := Record{ModelID: "phi3", GovernanceTier: "standard"}
		rebuilt, err := FromMap(original.FullMap().AsMap())
		require.NoError(t, err)
		assert.Equal(t, original, rebuilt)
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		t.Parallel()
		r, err := FromMap(map[string]string{
			"model_id":             "x",
			"unknown_future_field": "y",
		})
		require.NoError(t, err)
		assert.Equal(t, Record{ModelID: "x"}, r)
	})

	t.Run("missing model_id", func(t *testing.T) {
		t.Parallel()
		_, err := FromMap(map[string]string{"provider_id": "ollama"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingModelID))
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()
		_, err := FromMap(map[string]string{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingModelID))
	})

	t.Run("round trip via registry extension", func(t *testing.T) {
		t.Parallel()
		original := Record{ModelID: "phi3", ProviderID: "local"}
		inner := original.RegistryExtension("")[DefaultExtensionKey]
		rebuilt, err := FromMap(inner.AsMap())
		require.NoError(t, err)
		assert.Equal(t, original, rebuilt)
	})
}

func TestRecordEquality(t *testing.T) {
	t.Parallel()

	a := fullRecord()
	b := fullRecord()
	assert.True(t, a == b)

	b.RiskLevel = "high"
	assert.False(t, a == b)

	assert.True(t, Record{ModelID: "x"} == Record{ModelID: "x"})
	assert.False(t, Record{ModelID: "x"} == Record{ModelID: "x", ProviderID: "p"})
}
