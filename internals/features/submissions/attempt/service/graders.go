// internals/features/submissions/attempt/service/graders.go
package service

import (
	"context"
	"errors"
	"strings"

	"snop_backend/internals/constants"
	"snop_backend/internals/features/ai"
	challengeModel "snop_backend/internals/features/challenges/challenge/model"
)

var (
	ErrAnswerRequired = errors.New("jawaban wajib diisi")
	ErrAudioRequired  = errors.New("file audio wajib diunggah")
)

/* ===== Multiple choice ===== */

type MultipleChoiceGrader struct{}

func (MultipleChoiceGrader) Type() string { return constants.ChallengeTypeMultipleChoice }

// Grade membandingkan TEKS opsi yang dipilih dengan opsi benar,
// jadi aman terhadap pengacakan urutan di response.
func (MultipleChoiceGrader) Grade(_ context.Context, ch *challengeModel.ChallengeModel, in *SubmissionInput) (*GradeResult, error) {
	if strings.TrimSpace(in.Answer) == "" {
		return nil, ErrAnswerRequired
	}
	content, err := challengeModel.DecodeContent[challengeModel.MultipleChoiceContent](ch.Content)
	if err != nil {
		return nil, err
	}
	if content.CorrectIndex < 0 || content.CorrectIndex >= len(content.Options) {
		return nil, errors.New("soal korup: correct_index di luar jangkauan")
	}
	return gradeChoice(content.Options[content.CorrectIndex], in.Answer), nil
}

/* ===== Listening (pilihan setelah mendengar audio) ===== */

type ListeningGrader struct{}

func (ListeningGrader) Type() string { return constants.ChallengeTypeListening }

func (ListeningGrader) Grade(_ context.Context, ch *challengeModel.ChallengeModel, in *SubmissionInput) (*GradeResult, error) {
	if strings.TrimSpace(in.Answer) == "" {
		return nil, ErrAnswerRequired
	}
	content, err := challengeModel.DecodeContent[challengeModel.ListeningContent](ch.Content)
	if err != nil {
		return nil, err
	}
	if content.CorrectIndex < 0 || content.CorrectIndex >= len(content.Options) {
		return nil, errors.New("soal korup: correct_index di luar jangkauan")
	}
	return gradeChoice(content.Options[content.CorrectIndex], in.Answer), nil
}

func gradeChoice(correctOption, answer string) *GradeResult {
	correct := ai.NormalizeText(answer) == ai.NormalizeText(correctOption)
	score := 0.0
	if correct {
		score = 1.0
	}
	return &GradeResult{
		Score:     score,
		IsCorrect: correct,
		Feedback: map[string]any{
			"correct_answer": correctOption,
		},
	}
}

/* ===== Fill in the blank ===== */

type FillBlankGrader struct{}

func (FillBlankGrader) Type() string { return constants.ChallengeTypeFillBlank }

// Jawaban dinormalisasi dulu; alternatif yang terdaftar ikut diterima.
func (FillBlankGrader) Grade(_ context.Context, ch *challengeModel.ChallengeModel, in *SubmissionInput) (*GradeResult, error) {
	if strings.TrimSpace(in.Answer) == "" {
		return nil, ErrAnswerRequired
	}
	content, err := challengeModel.DecodeContent[challengeModel.FillBlankContent](ch.Content)
	if err != nil {
		return nil, err
	}

	given := ai.NormalizeText(in.Answer)
	accepted := append([]string{content.Answer}, content.Alternatives...)

	correct := false
	for _, a := range accepted {
		if given == ai.NormalizeText(a) {
			correct = true
			break
		}
	}

	score := 0.0
	if correct {
		score = 1.0
	}
	return &GradeResult{
		Score:     score,
		IsCorrect: correct,
		Feedback: map[string]any{
			"correct_answer": content.Answer,
		},
	}, nil
}

/* ===== Pronunciation (Whisper + similarity) ===== */

type PronunciationGrader struct {
	Whisper *ai.WhisperClient
}

func (PronunciationGrader) Type() string { return constants.ChallengeTypePronunciation }

func (g PronunciationGrader) Grade(ctx context.Context, ch *challengeModel.ChallengeModel, in *SubmissionInput) (*GradeResult, error) {
	if in.Audio == nil {
		return nil, ErrAudioRequired
	}
	if g.Whisper == nil {
		return nil, errors.New("transcription tidak dikonfigurasi")
	}
	content, err := challengeModel.DecodeContent[challengeModel.PronunciationContent](ch.Content)
	if err != nil {
		return nil, err
	}

	transcript, err := g.Whisper.Transcribe(ctx, in.AudioFilename, in.Audio)
	if err != nil {
		return nil, err
	}

	similarity := ai.SimilarityRatio(transcript, content.Text)
	score := BucketPronunciationScore(similarity)

	return &GradeResult{
		Score:     score,
		IsCorrect: similarity >= PassThreshold(),
		Feedback: map[string]any{
			"target":     content.Text,
			"transcript": transcript,
			"similarity": similarity,
		},
	}, nil
}
