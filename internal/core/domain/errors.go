package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes surfaced to callers. Each command failure carries exactly
// one of these plus enough contextual fields to render a diagnostic
// without re-querying.
const (
	CodeCampaignLocked                   = "CAMPAIGN_LOCKED"
	CodeCampaignNotFound                 = "CAMPAIGN_NOT_FOUND"
	CodeCampaignDeleted                  = "CAMPAIGN_DELETED"
	CodeCampaignVersionMismatch          = "CAMPAIGN_VERSION_MISMATCH"
	CodeCampaignVersionMismatchPostWrite = "CAMPAIGN_VERSION_MISMATCH_AFTER_UPDATE"
	CodeCampaignStatusUnchanged          = "CAMPAIGN_STATUS_UNCHANGED"
	CodeAdSetLimitExceeded               = "ADSET_LIMIT_EXCEEDED"
	CodeNoActiveAdSets                   = "NO_ACTIVE_ADSETS"
	CodeCampaignBudgetExceeded           = "CAMPAIGN_BUDGET_EXCEEDED"
	CodeBudgetBelowActiveAdSetsTotal     = "CAMPAIGN_BUDGET_LESS_THAN_ACTIVE_ADSETS_TOTAL_BUDGET"
	CodeMaxAdSetsReached                 = "MAX_AD_SETS_REACHED"
	CodeAdSetNotFound                    = "AD_SET_NOT_FOUND"
	CodeAdSetCampaignMismatch            = "AD_SET_CAMPAIGN_MISMATCH"
	CodeAdSetAlreadyDeleted              = "AD_SET_ALREADY_DELETED"
	CodeAdSetDeleted                     = "AD_SET_DELETED"
	CodeAdSetNoActiveAds                 = "AD_SET_NO_ACTIVE_ADS"
	CodeAdSetActivationExceedsBudget     = "AD_SET_ACTIVATION_EXCEEDS_CAMPAIGN_BUDGET"
	CodeAdSetOnlyActiveInActiveCampaign  = "AD_SET_ONLY_ACTIVE_IN_ACTIVE_CAMPAIGN"
	CodeCannotDeleteOnlyActiveAdSet      = "CANNOT_DELETE_ONLY_ACTIVE_AD_SET"
	CodeMaxAdsReached                    = "MAX_ADS_REACHED"
	CodeAdNotFound                       = "AD_NOT_FOUND"
	CodeAdAdSetMismatch                  = "AD_AD_SET_MISMATCH"
	CodeAdDeleted                        = "AD_DELETED"
	CodeCannotPauseOnlyActiveAd          = "CANNOT_PAUSE_ONLY_ACTIVE_AD"
	CodeCannotDeleteOnlyActiveAd         = "CANNOT_DELETE_ONLY_ACTIVE_AD"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
)

// Error is a typed domain failure. Code is machine-readable; Fields hold
// contextual identifiers (campaignId, expectedVersion, computed sums and
// so on) serializable directly into an API response.
type Error struct {
	Kind   ErrorKind
	Code   string
	Fields map[string]any
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return e.Code + " (" + strings.Join(parts, ", ") + ")"
}

// NotFound builds a not-found error with the given code and context.
func NotFound(code string, fields map[string]any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Fields: fields}
}

// Conflict builds a conflict error with the given code and context.
func Conflict(code string, fields map[string]any) *Error {
	return &Error{Kind: KindConflict, Code: code, Fields: fields}
}

// AsError unwraps err into a *Error, or nil when err is not a domain
// error.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}

// IsNotFound reports whether err is a domain not-found error.
func IsNotFound(err error) bool {
	de := AsError(err)
	return de != nil && de.Kind == KindNotFound
}

// IsConflict reports whether err is a domain conflict error.
func IsConflict(err error) bool {
	de := AsError(err)
	return de != nil && de.Kind == KindConflict
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code string) bool {
	de := AsError(err)
	return de != nil && de.Code == code
}
