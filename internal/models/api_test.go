package models

import (
	"strings"
	"testing"

	"github.com/lk16/cco/internal/rules"
	"github.com/stretchr/testify/assert"
)

func TestNewMatchRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		request    NewMatchRequest
		wantErrMsg string
	}{
		{
			name:    "OK",
			request: NewMatchRequest{PlayerName: "alice", MatchName: "friday"},
		},
		{
			name:       "EmptyPlayer",
			request:    NewMatchRequest{PlayerName: " ", MatchName: "friday"},
			wantErrMsg: "player_name is empty",
		},
		{
			name:       "EmptyMatch",
			request:    NewMatchRequest{PlayerName: "alice"},
			wantErrMsg: "match_name is empty",
		},
		{
			name:       "LongMatch",
			request:    NewMatchRequest{PlayerName: "alice", MatchName: strings.Repeat("x", 33)},
			wantErrMsg: "match_name is longer than 32 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErrMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErrMsg)
		})
	}
}

func TestJoinMatchRequestValidate(t *testing.T) {
	assert.NoError(t, (&JoinMatchRequest{MatchID: "abc", PlayerName: "bob"}).Validate())
	assert.EqualError(t, (&JoinMatchRequest{PlayerName: "bob"}).Validate(), "match_id is empty")
	assert.EqualError(t, (&JoinMatchRequest{MatchID: "abc"}).Validate(), "player_name is empty")
}

func TestInputRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request InputRequest
		want    rules.PieceType
		wantErr bool
	}{
		{"Click", InputRequest{Row: 6, Col: 4}, rules.NoPiece, false},
		{"Promotion", InputRequest{Row: 0, Col: 0, Promotion: "knight"}, rules.Knight, false},
		{"OffBoard", InputRequest{Row: 8, Col: 0}, rules.NoPiece, true},
		{"NegativeCol", InputRequest{Row: 0, Col: -1}, rules.NoPiece, true},
		{"UnknownPiece", InputRequest{Promotion: "dragon"}, rules.NoPiece, true},
		{"King", InputRequest{Promotion: "king"}, rules.NoPiece, true},
		{"Disc", InputRequest{Promotion: "othello"}, rules.NoPiece, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, choice)
		})
	}
}
