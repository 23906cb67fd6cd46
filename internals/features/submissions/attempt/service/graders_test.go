package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	challengeModel "snop_backend/internals/features/challenges/challenge/model"
)

func mcChallenge(t *testing.T) *challengeModel.ChallengeModel {
	t.Helper()
	content, err := challengeModel.EncodeContent(challengeModel.MultipleChoiceContent{
		Question:     "Hva sier du om morgenen?",
		Options:      []string{"God morgen", "God natt", "Ha det", "Takk"},
		CorrectIndex: 0,
	})
	require.NoError(t, err)
	return &challengeModel.ChallengeModel{Type: "multiple_choice", Content: content}
}

func TestMultipleChoiceGrader(t *testing.T) {
	ch := mcChallenge(t)
	g := MultipleChoiceGrader{}

	t.Run("jawaban benar", func(t *testing.T) {
		res, err := g.Grade(context.Background(), ch, &SubmissionInput{Answer: "God morgen"})
		require.NoError(t, err)
		assert.True(t, res.IsCorrect)
		assert.Equal(t, 1.0, res.Score)
	})

	t.Run("case & tanda baca diabaikan", func(t *testing.T) {
		res, err := g.Grade(context.Background(), ch, &SubmissionInput{Answer: "  god MORGEN! "})
		require.NoError(t, err)
		assert.True(t, res.IsCorrect)
	})

	t.Run("jawaban salah", func(t *testing.T) {
		res, err := g.Grade(context.Background(), ch, &SubmissionInput{Answer: "God natt"})
		require.NoError(t, err)
		assert.False(t, res.IsCorrect)
		assert.Equal(t, 0.0, res.Score)
		assert.Equal(t, "God morgen", res.Feedback["correct_answer"])
	})

	t.Run("jawaban kosong", func(t *testing.T) {
		_, err := g.Grade(context.Background(), ch, &SubmissionInput{Answer: "  "})
		assert.ErrorIs(t, err, ErrAnswerRequired)
	})
}

func TestListeningGrader(t *testing.T) {
	content, err := challengeModel.EncodeContent(challengeModel.ListeningContent{
		AudioText:    "Jeg vil gjerne ha en kopp kaffe, takk.",
		Question:     "Hva bestiller personen?",
		Options:      []string{"te", "kaffe", "kake"},
		CorrectIndex: 1,
	})
	require.NoError(t, err)
	ch := &challengeModel.ChallengeModel{Type: "listening", Content: content}

	res, err := ListeningGrader{}.Grade(context.Background(), ch, &SubmissionInput{Answer: "kaffe"})
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
}

func TestFillBlankGrader(t *testing.T) {
	content, err := challengeModel.EncodeContent(challengeModel.FillBlankContent{
		Sentence:     "Jeg ___ litt norsk.",
		Answer:       "snakker",
		Alternatives: []string{"prater"},
	})
	require.NoError(t, err)
	ch := &challengeModel.ChallengeModel{Type: "fill_blank", Content: content}
	g := FillBlankGrader{}

	tests := []struct {
		answer  string
		correct bool
	}{
		{"snakker", true},
		{"Snakker", true},
		{"prater", true}, // alternatif diterima
		{"snakke", false},
		{"spiser", false},
	}
	for _, tt := range tests {
		res, err := g.Grade(context.Background(), ch, &SubmissionInput{Answer: tt.answer})
		require.NoError(t, err)
		assert.Equal(t, tt.correct, res.IsCorrect, "answer=%q", tt.answer)
	}
}

func TestPronunciationGrader_TanpaAudio(t *testing.T) {
	content, err := challengeModel.EncodeContent(challengeModel.PronunciationContent{Text: "Takk for maten"})
	require.NoError(t, err)
	ch := &challengeModel.ChallengeModel{Type: "pronunciation", Content: content}

	_, err = PronunciationGrader{}.Grade(context.Background(), ch, &SubmissionInput{})
	assert.ErrorIs(t, err, ErrAudioRequired)
}

func TestGraderDispatch(t *testing.T) {
	// registry harus punya grader untuk semua tipe non-IRL
	graders := map[string]Grader{}
	for _, g := range []Grader{
		MultipleChoiceGrader{},
		ListeningGrader{},
		FillBlankGrader{},
		PronunciationGrader{},
	} {
		graders[g.Type()] = g
	}

	for _, typ := range []string{"multiple_choice", "listening", "fill_blank", "pronunciation"} {
		g, ok := graders[typ]
		require.True(t, ok, typ)
		assert.Equal(t, typ, g.Type())
	}
	_, hasIRL := graders["irl"]
	assert.False(t, hasIRL)
}
