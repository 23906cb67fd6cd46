package model

import (
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

/* =====================================================
   Payload `content` per tipe tantangan.
   Disimpan sebagai jsonb, di-decode sesuai kolom type.
   ===================================================== */

type MultipleChoiceContent struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type FillBlankContent struct {
	Sentence     string   `json:"sentence"` // pakai ___ sebagai blank
	Answer       string   `json:"answer"`
	Alternatives []string `json:"alternatives,omitempty"`
}

type ListeningContent struct {
	AudioText    string   `json:"audio_text"` // kalimat yang dibacakan TTS di aplikasi
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type PronunciationContent struct {
	Text string `json:"text"` // frasa target yang harus diucapkan
}

type GPSTarget struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM float64 `json:"radius_m,omitempty"` // 0 = pakai default
}

// IRLContent: tantangan dunia nyata. Modes menentukan bukti apa
// yang bisa dikirim user (photo / gps / text); tier XP tergantung
// berapa banyak bukti yang lolos.
type IRLContent struct {
	Topic         string     `json:"topic"`
	PhotoKeywords []string   `json:"photo_keywords,omitempty"`
	GPS           *GPSTarget `json:"gps,omitempty"`
	Modes         []string   `json:"modes"`
}

func DecodeContent[T any](raw datatypes.JSON) (*T, error) {
	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func EncodeContent(v any) (datatypes.JSON, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
