package usecase

import (
	"strings"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// alreadyDoneMarkers are the fragments the platforms use to reject a repeated
// check-in. The upstream error schema is untyped, so matching is by substring.
var alreadyDoneMarkers = []string{
	"已经签到",
	"已签到",
	"Duplicate entry",
}

// ClassifyCheckIn maps a raw check-in reply to an outcome. The second result
// is true when the reply was a success without reward and a streak bonus
// claim should decide the final outcome.
func ClassifyCheckIn(resp *model.CheckInResponse) (model.ActionOutcome, bool) {
	if resp == nil {
		return model.Failed("request failed"), false
	}

	if resp.Success {
		if resp.Reward != nil && *resp.Reward > 0 {
			return model.Succeeded(*resp.Reward), false
		}
		return model.Succeeded(0), true
	}

	if isAlreadyDone(resp.Message) || isAlreadyDone(resp.Raw) {
		return model.AlreadyDone(), false
	}

	msg := resp.Message
	if msg == "" {
		msg = "unknown"
	}
	return model.Failed(msg), false
}

func isAlreadyDone(text string) bool {
	for _, marker := range alreadyDoneMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
