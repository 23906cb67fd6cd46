// file: internals/helpers/oss/oss_client.go
package oss

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

var (
	clientOnce sync.Once
	bucketInst *oss.Bucket
	bucketErr  error
)

// batas ukuran upload foto bukti IRL
const MaxUploadSize = int64(5 * 1024 * 1024)

/* =======================================================================
   Client OSS (lazy, sekali saja)
======================================================================= */

func getBucket() (*oss.Bucket, error) {
	clientOnce.Do(func() {
		endpoint := getEnv("OSS_ENDPOINT")
		keyID := getEnv("OSS_ACCESS_KEY_ID")
		keySecret := getEnv("OSS_ACCESS_KEY_SECRET")
		bucketName := getEnv("OSS_BUCKET")

		if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
			bucketErr = fmt.Errorf("konfigurasi OSS belum lengkap (OSS_ENDPOINT/OSS_ACCESS_KEY_ID/OSS_ACCESS_KEY_SECRET/OSS_BUCKET)")
			return
		}

		client, err := oss.New(endpoint, keyID, keySecret)
		if err != nil {
			bucketErr = err
			return
		}
		bucketInst, bucketErr = client.Bucket(bucketName)
	})
	return bucketInst, bucketErr
}

/* =======================================================================
   Decode gambar (jpeg/png/webp) dari []byte dengan sniff MIME
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)

	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		// fallback by extension
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("format tidak didukung: %s / %s", ct, ext)
		}
	}
	return img, err
}

/* =======================================================================
   Konversi foto → WebP (resize keep-aspect + encode lossy)
======================================================================= */

func convertToWebP(raw []byte, filename string) ([]byte, error) {
	img, err := decodeImage(raw, filename)
	if err != nil {
		return nil, err
	}

	maxW := 1600
	maxH := 1600
	b := img.Bounds()
	if b.Dx() > maxW || b.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/* =======================================================================
   Upload publik
======================================================================= */

// UploadPhotoWebP mengonversi foto ke WebP lalu upload ke OSS dengan ACL
// public-read. Return URL publik.
func UploadPhotoWebP(objectKey string, raw []byte, filename string) (string, error) {
	if int64(len(raw)) > MaxUploadSize {
		return "", fmt.Errorf("ukuran foto melebihi %dMB", MaxUploadSize/(1024*1024))
	}

	data, err := convertToWebP(raw, filename)
	if err != nil {
		return "", fmt.Errorf("konversi webp gagal: %w", err)
	}

	bucket, err := getBucket()
	if err != nil {
		return "", err
	}

	opts := []oss.Option{
		oss.ContentType("image/webp"),
		oss.ObjectACL(oss.ACLPublicRead),
	}
	if err := bucket.PutObject(objectKey, bytes.NewReader(data), opts...); err != nil {
		return "", fmt.Errorf("upload OSS gagal: %w", err)
	}

	return PublicURL(objectKey), nil
}

// PublicURL membangun URL publik objek (pakai OSS_PUBLIC_BASE_URL kalau ada CDN)
func PublicURL(objectKey string) string {
	if base := getEnv("OSS_PUBLIC_BASE_URL"); base != "" {
		return strings.TrimRight(base, "/") + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.%s/%s", getEnv("OSS_BUCKET"), getEnv("OSS_ENDPOINT"), objectKey)
}
