package response

import "github.com/salasintercc/expo-admin-api/internal/domain"

// WizardStepResponse is one flattened wizard step together with the
// exhibitor's current answer, if any.
type WizardStepResponse struct {
	StandOptionID uint                  `json:"stand_option_id"`
	Item          domain.StandItem      `json:"item"`
	Response      *domain.FieldResponse `json:"response,omitempty"`
}

type WizardResponse struct {
	EventID uint                 `json:"event_id"`
	Steps   []WizardStepResponse `json:"steps"`
	Drafts  []domain.StandConfig `json:"drafts"`
}

// SubmitOutcomeResponse reports per-configuration results so a partial
// failure does not mask the configurations that did go through.
type SubmitOutcomeResponse struct {
	Submitted []domain.StandConfig `json:"submitted"`
	Failed    map[uint]string      `json:"failed,omitempty"`
}

type PaymentIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
