package catalog

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	"github.com/maxturnos/turnos-service/internal/service/catalog/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
)

type fakeBusinesses struct{}

func (fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	return &domain.Business{Code: code, Categories: []string{"Cortes", "Barba"}}, nil
}

type fakeServices struct {
	items  []*domain.Service
	nextID int64
}

func (f *fakeServices) List(context.Context, string) ([]*domain.Service, error) { return f.items, nil }

func (f *fakeServices) GetByID(_ context.Context, _ string, id int64) (*domain.Service, error) {
	for _, s := range f.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeServices) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	f.nextID++
	s.ID = f.nextID
	s.Position = len(f.items)
	f.items = append(f.items, s)
	return s, nil
}

func (f *fakeServices) Update(_ context.Context, s *domain.Service) error {
	for i, existing := range f.items {
		if existing.ID == s.ID {
			f.items[i] = s
			return nil
		}
	}
	return catalogRepo.ErrServiceNotFound
}

func (f *fakeServices) Delete(context.Context, string, int64) error    { return nil }
func (f *fakeServices) Reorder(context.Context, string, []int64) error { return nil }

type fakeStaff struct{ created *domain.Staff }

func (f *fakeStaff) List(context.Context, string) ([]*domain.Staff, error) { return nil, nil }
func (f *fakeStaff) GetByID(context.Context, string, int64) (*domain.Staff, error) {
	return f.created, nil
}
func (f *fakeStaff) Create(_ context.Context, s *domain.Staff) (*domain.Staff, error) {
	s.ID = 1
	f.created = s
	return s, nil
}
func (f *fakeStaff) Update(context.Context, *domain.Staff) error    { return nil }
func (f *fakeStaff) Delete(context.Context, string, int64) error    { return nil }
func (f *fakeStaff) Reorder(context.Context, string, []int64) error { return nil }

type recordingCache struct{ deleted []string }

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

var owner = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func newService() (*Service, *fakeServices, *fakeStaff, *recordingCache) {
	services, staff, cache := &fakeServices{}, &fakeStaff{}, &recordingCache{}
	return NewService(fakeBusinesses{}, services, staff, cache, logger.Nop()), services, staff, cache
}

func TestCreateService(t *testing.T) {
	svc, services, _, cache := newService()

	resp, err := svc.CreateService(context.Background(), owner, "barberia", &models.ServiceRequest{
		Nombre: " Corte Clásico ", Categoria: "Cortes", Duracion: "30 min", Precio: "$2500",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corte Clásico", resp.Nombre)
	assert.Len(t, services.items, 1)
	assert.Equal(t, []string{"storefront:barberia"}, cache.deleted)
}

func TestCreateService_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		actor   domain.Principal
		req     models.ServiceRequest
		wantErr error
	}{
		{name: "unknown category", actor: owner, req: models.ServiceRequest{Nombre: "Tinte", Categoria: "Color", Duracion: "1:30"}, wantErr: ErrUnknownCategory},
		{name: "long description", actor: owner, req: models.ServiceRequest{Nombre: "Tinte", Duracion: "30 min", Descripcion: strings.Repeat("a", 251)}, wantErr: ErrInvalidInput},
		{name: "no duration", actor: owner, req: models.ServiceRequest{Nombre: "Tinte", Duracion: "pronto"}, wantErr: ErrInvalidInput},
		{name: "no name", actor: owner, req: models.ServiceRequest{Duracion: "30 min"}, wantErr: ErrInvalidInput},
		{name: "customer", actor: domain.Principal{Email: "ana@example.com"}, req: models.ServiceRequest{Nombre: "Tinte", Duracion: "30 min"}, wantErr: ErrAccessDenied},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, services, _, _ := newService()
			_, err := svc.CreateService(context.Background(), tc.actor, "barberia", &tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, services.items)
		})
	}
}

func TestUpdateService_NotFound(t *testing.T) {
	svc, _, _, _ := newService()
	_, err := svc.UpdateService(context.Background(), owner, "barberia", 42, &models.ServiceRequest{Nombre: "X", Duracion: "30 min"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateStaff_AvatarIsThumbnailed(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for x := 0; x < 600; x++ {
		src.Set(x, 200, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	svc, _, staff, _ := newService()
	resp, err := svc.CreateStaff(context.Background(), owner, "barberia", &models.StaffRequest{
		Nombre:      "Carlos Mendoza",
		Avatar:      dataURL,
		Specialties: []string{"Fade", " ", "Barba"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Fade", "Barba"}, resp.Specialties)
	require.True(t, strings.HasPrefix(staff.created.Avatar, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(staff.created.Avatar, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	thumb, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, avatarSize, thumb.Bounds().Dx())
	assert.Equal(t, avatarSize, thumb.Bounds().Dy())
}

func TestCreateStaff_PlainURLAndBrokenDataURL(t *testing.T) {
	svc, _, staff, _ := newService()

	_, err := svc.CreateStaff(context.Background(), owner, "barberia", &models.StaffRequest{Nombre: "Lucía", Avatar: "https://cdn.example.com/lucia.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/lucia.png", staff.created.Avatar)

	_, err = svc.CreateStaff(context.Background(), owner, "barberia", &models.StaffRequest{Nombre: "Lucía", Avatar: "data:image/png;base64,%%%"})
	assert.ErrorIs(t, err, ErrInvalidAvatar)
}

func TestReorder_RejectsDuplicates(t *testing.T) {
	svc, _, _, _ := newService()
	err := svc.ReorderServices(context.Background(), owner, "barberia", []int64{1, 2, 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
