package media

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin/search"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService implements Service against the Cloudinary API.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) Upload(ctx context.Context, file io.Reader, filename string) (Image, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: Folder})
	if err != nil {
		return Image{}, err
	}
	return Image{
		PublicID:  res.PublicID,
		URL:       res.SecureURL,
		Format:    res.Format,
		Size:      int64(res.Bytes),
		CreatedAt: res.CreatedAt,
	}, nil
}

func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Result != "ok" {
		return ErrNotFound
	}
	return nil
}

func (s *CloudinaryService) List(ctx context.Context) ([]Image, error) {
	res, err := s.cld.Admin.Search(ctx, search.Query{
		Expression: "folder:" + Folder,
		SortBy:     []search.SortByField{{"created_at": search.Descending}},
		MaxResults: MaxListResults,
	})
	if err != nil {
		return nil, err
	}
	images := make([]Image, 0, len(res.Assets))
	for _, asset := range res.Assets {
		images = append(images, Image{
			PublicID:  asset.PublicID,
			URL:       asset.SecureURL,
			Format:    asset.Format,
			Size:      int64(asset.Bytes),
			CreatedAt: asset.CreatedAt,
		})
	}
	return images, nil
}

func (s *CloudinaryService) Ping(ctx context.Context) error {
	_, err := s.cld.Admin.Ping(ctx)
	return err
}
