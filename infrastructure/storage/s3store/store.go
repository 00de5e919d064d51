package s3store

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/compliance-manager-api/internal/config"
)

// Store baixa assets de criativos e os persiste em um bucket S3 (ou
// compatível). Implementa a interface Store do resolvedor de assets.
type Store struct {
	s3Client   *s3.Client
	httpClient *http.Client
	cfg        config.AssetStorage
}

func New(ctx context.Context, cfg config.AssetStorage) (*Store, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &Store{
		s3Client:   s3Client,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cfg:        cfg,
	}, nil
}

// DownloadAndSave baixa o asset da URL de origem e o grava no bucket.
// A chave é determinística sobre a URL de origem, então reexecuções
// sobrescrevem o mesmo objeto em vez de acumular cópias.
func (s *Store) DownloadAndSave(ctx context.Context, sourceURL, owner string) (string, error) {
	body, contentType, err := s.download(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	key := objectKey(sourceURL, owner, contentType)

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao gravar asset no bucket: %w", err)
	}

	logrus.Debugf("Asset persistido em %s (%d bytes)", key, len(body))

	if s.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), key), nil
	}

	return key, nil
}

func (s *Store) download(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao montar requisição de download: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao baixar asset de %s: %w", sourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download de %s retornou status %d", sourceURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler corpo do asset: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return body, contentType, nil
}

func objectKey(sourceURL, owner, contentType string) string {
	sum := sha1.Sum([]byte(sourceURL))

	return path.Join("creatives", owner, hex.EncodeToString(sum[:])+extensionFor(contentType))
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "mp4"):
		return ".mp4"
	default:
		return ".jpg"
	}
}
