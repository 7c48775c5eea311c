package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polkiloo/checkin/internal/domain/model"
)

func reward(v int64) *int64 { return &v }

func TestClassifyCheckIn(t *testing.T) {
	cases := []struct {
		name  string
		resp  *model.CheckInResponse
		want  model.ActionOutcome
		claim bool
	}{
		{"transport failure", nil, model.Failed("request failed"), false},
		{"reward granted", &model.CheckInResponse{Success: true, Reward: reward(3)}, model.Succeeded(3), false},
		{"zero reward", &model.CheckInResponse{Success: true, Reward: reward(0)}, model.Succeeded(0), true},
		{"reward absent", &model.CheckInResponse{Success: true}, model.Succeeded(0), true},
		{"already signed coins", &model.CheckInResponse{Message: "您今天已经签到过了"}, model.AlreadyDone(), false},
		{"already signed points", &model.CheckInResponse{Message: "今天已签到"}, model.AlreadyDone(), false},
		{"duplicate entry in raw", &model.CheckInResponse{Message: "error", Raw: `{"message":"Duplicate entry '1' for key"}`}, model.AlreadyDone(), false},
		{"rejected", &model.CheckInResponse{Message: "token invalid"}, model.Failed("token invalid"), false},
		{"rejected without message", &model.CheckInResponse{}, model.Failed("unknown"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, claim := ClassifyCheckIn(tc.resp)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.claim, claim)
		})
	}
}
