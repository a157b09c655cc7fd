package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/yungbote/fundocs-backend/internal/modules/learning"
	"github.com/yungbote/fundocs-backend/internal/modules/user"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
)

// fakeLearning records the last input per call and returns canned results.
type fakeLearning struct {
	err error

	gotFetch    learning.FetchCleanDocInput
	gotList     learning.ListUserDocsInput
	gotProgress learning.UpdateProgressInput
	gotGet      learning.GetProgressInput
	gotPDF      learning.ReportPDFInput
	updateCalls int
	pdf         []byte
}

func (f *fakeLearning) FetchCleanDoc(ctx context.Context, in learning.FetchCleanDocInput) (learning.FetchCleanDocOutput, error) {
	f.gotFetch = in
	return learning.FetchCleanDocOutput{}, f.err
}

func (f *fakeLearning) ListUserDocs(ctx context.Context, in learning.ListUserDocsInput) (learning.ListUserDocsOutput, error) {
	f.gotList = in
	if f.err != nil {
		return learning.ListUserDocsOutput{}, f.err
	}
	return learning.ListUserDocsOutput{Docs: nil}, nil
}

func (f *fakeLearning) DeleteDoc(ctx context.Context, in learning.DeleteDocInput) (learning.DeleteOutput, error) {
	if f.err != nil {
		return learning.DeleteOutput{}, f.err
	}
	return learning.DeleteOutput{Success: true, Message: "Document deleted successfully"}, nil
}

func (f *fakeLearning) GenerateAll(ctx context.Context, in learning.GenerateAllInput) (learning.GenerateAllOutput, error) {
	return learning.GenerateAllOutput{}, f.err
}

func (f *fakeLearning) UpdateProgress(ctx context.Context, in learning.UpdateProgressInput) (learning.UpdateProgressOutput, error) {
	f.updateCalls++
	f.gotProgress = in
	if f.err != nil {
		return learning.UpdateProgressOutput{}, f.err
	}
	return learning.UpdateProgressOutput{XP: in.XPEarned, Streak: 1, Badges: []string{}}, nil
}

func (f *fakeLearning) GetProgress(ctx context.Context, in learning.GetProgressInput) (learning.GetProgressOutput, error) {
	f.gotGet = in
	return learning.GetProgressOutput{}, f.err
}

func (f *fakeLearning) Leaderboard(ctx context.Context) (learning.LeaderboardOutput, error) {
	return learning.LeaderboardOutput{Leaderboard: []learning.LeaderboardEntry{}}, f.err
}

func (f *fakeLearning) SubmitChallenge(ctx context.Context, in learning.SubmitChallengeInput) (learning.SubmitChallengeOutput, error) {
	return learning.SubmitChallengeOutput{}, f.err
}

func (f *fakeLearning) GenerateReport(ctx context.Context, in learning.GenerateReportInput) (learning.GenerateReportOutput, error) {
	return learning.GenerateReportOutput{Report: "# User Progress Report"}, f.err
}

func (f *fakeLearning) ReportPDF(ctx context.Context, in learning.ReportPDFInput) ([]byte, error) {
	f.gotPDF = in
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

type fakeUsers struct {
	err error
	got user.DeleteAccountInput
}

func (f *fakeUsers) DeleteAccount(ctx context.Context, in user.DeleteAccountInput) (user.DeleteAccountOutput, error) {
	f.got = in
	if f.err != nil {
		return user.DeleteAccountOutput{}, f.err
	}
	return user.DeleteAccountOutput{Success: true, Message: "deleted"}, nil
}

var errForbidden = apierr.New(http.StatusForbidden, "forbidden", errors.New("Unauthorized to delete this document"))
