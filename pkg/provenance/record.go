// Package provenance defines the model-provenance record surfaced in
// federated agent discovery. A Record describes which model an agent runs
// and reshapes into the three wire formats its consumers expect: a
// namespaced registry extension, AgentCard-style profile metadata, and a
// minimal audit block. The package performs no validation of field values
// against enumerated vocabularies; classification policy belongs to the
// governance layers that consume these records.
package provenance

import "github.com/rotisserie/eris"

// DefaultExtensionKey is the vendor-neutral key under which provenance is
// embedded in registry metadata. Vendors may substitute their own namespace
// via RegistryExtension.
const DefaultExtensionKey = "x_model_provenance"

// profileKey is reserved by the agent profile schema and is deliberately
// not caller-overridable.
const profileKey = "model_info"

// Sentinel errors. Callers discriminate with errors.Is.
var (
	// ErrMissingModelID reports reconstruction input that lacks the
	// model_id key. Permanent input error; not retryable.
	ErrMissingModelID = eris.New("provenance: model_id is required")

	// ErrInvalidRecord reports construction with an empty model ID.
	ErrInvalidRecord = eris.New("provenance: record requires a non-empty model id")
)

// Wire field names, in declaration order.
const (
	keyModelID        = "model_id"
	keyModelVersion   = "model_version"
	keyProviderID     = "provider_id"
	keyModelType      = "model_type"
	keyBaseModel      = "base_model"
	keyGovernanceTier = "governance_tier"
	keyWeightsHash    = "weights_hash"
	keyRiskLevel      = "risk_level"
)

// Record is an immutable-by-convention model provenance record. Only
// ModelID is required; every other field defaults to the empty string,
// which is the sentinel for "unset" and is omitted from all serialized
// output. Records are comparable: two records are equal iff all eight
// fields are pairwise equal.
//
// Direct struct-literal construction is valid only with a non-empty
// ModelID; use New when the model ID comes from untrusted input.
type Record struct {
	ModelID        string `json:"model_id,omitempty"`
	ModelVersion   string `json:"model_version,omitempty"`
	ProviderID     string `json:"provider_id,omitempty"`
	ModelType      string `json:"model_type,omitempty"`
	BaseModel      string `json:"base_model,omitempty"`
	GovernanceTier string `json:"governance_tier,omitempty"`
	WeightsHash    string `json:"weights_hash,omitempty"`
	RiskLevel      string `json:"risk_level,omitempty"`
}

// Option sets an optional field on a Record under construction.
type Option func(*Record)

// WithModelVersion sets the free-form version label.
func WithModelVersion(v string) Option { return func(r *Record) { r.ModelVersion = v } }

// WithProviderID sets the inference provider identifier.
func WithProviderID(v string) Option { return func(r *Record) { r.ProviderID = v } }

// WithModelType sets the free-form paradigm tag.
func WithModelType(v string) Option { return func(r *Record) { r.ModelType = v } }

// WithBaseModel sets the foundation model this one derives from.
func WithBaseModel(v string) Option { return func(r *Record) { r.BaseModel = v } }

// WithGovernanceTier sets the free-form governance classification.
func WithGovernanceTier(v string) Option { return func(r *Record) { r.GovernanceTier = v } }

// WithWeightsHash sets the hex-encoded content hash of the model weights.
// The hash format is not validated at this layer.
func WithWeightsHash(v string) Option { return func(r *Record) { r.WeightsHash = v } }

// WithRiskLevel sets the free-form risk classification.
func WithRiskLevel(v string) Option { return func(r *Record) { r.RiskLevel = v } }

// New constructs a Record from a required model ID and optional fields.
// Returns ErrInvalidRecord when modelID is empty.
func New(modelID string, opts ...Option) (Record, error) {
	if modelID == "" {
		return Record{}, ErrInvalidRecord
	}
	r := Record{ModelID: modelID}
	for _, opt := range opts {
		opt(&r)
	}
	return r, nil
}

// FullMap returns every non-empty field as an ordered Map, in declaration
// order. Fields holding the empty string are omitted entirely. This is the
// shared building block for RegistryExtension and ProfileMetadata.
func (r Record) FullMap() Map {
	m := make(Map, 0, 8)
	m = m.set(keyModelID, r.ModelID)
	m = m.set(keyModelVersion, r.ModelVersion)
	m = m.set(keyProviderID, r.ProviderID)
	m = m.set(keyModelType, r.ModelType)
	m = m.set(keyBaseModel, r.BaseModel)
	m = m.set(keyGovernanceTier, r.GovernanceTier)
	m = m.set(keyWeightsHash, r.WeightsHash)
	m = m.set(keyRiskLevel, r.RiskLevel)
	return m
}

// RegistryExtension wraps FullMap under a single namespacing key for
// embedding in a larger registry metadata document. An empty extensionKey
// selects DefaultExtensionKey. Caller-supplied keys are not validated.
func (r Record) RegistryExtension(extensionKey string) map[string]Map {
	if extensionKey == "" {
		extensionKey = DefaultExtensionKey
	}
	return map[string]Map{extensionKey: r.FullMap()}
}

// ProfileMetadata wraps FullMap under the fixed "model_info" key reserved
// by the agent profile schema.
func (r Record) ProfileMetadata() map[string]Map {
	return map[string]Map{profileKey: r.FullMap()}
}

// MinimalAuditFields returns at most model_id, model_version, and
// provider_id, each included only when non-empty. The field set is
// enumerated here rather than derived from FullMap so that future record
// fields can never leak into audit payloads.
func (r Record) MinimalAuditFields() Map {
	m := make(Map, 0, 3)
	m = m.set(keyModelID, r.ModelID)
	m = m.set(keyModelVersion, r.ModelVersion)
	m = m.set(keyProviderID, r.ProviderID)
	return m
}

// FromMap reconstructs a Record from a string mapping, e.g. a decoded
// extension or profile block. Returns ErrMissingModelID when the model_id
// key is absent. Optional keys default to the empty string when absent and
// unrecognized keys are silently ignored, so input produced by future
// schema versions with additional fields still deserializes.
func FromMap(data map[string]string) (Record, error) {
	if _, ok := data[keyModelID]; !ok {
		return Record{}, ErrMissingModelID
	}
	return Record{
		ModelID:        data[keyModelID],
		ModelVersion:   data[keyModelVersion],
		ProviderID:     data[keyProviderID],
		ModelType:      data[keyModelType],
		BaseModel:      data[keyBaseModel],
		GovernanceTier: data[keyGovernanceTier],
		WeightsHash:    data[keyWeightsHash],
		RiskLevel:      data[keyRiskLevel],
	}, nil
}
