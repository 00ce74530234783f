package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Template стартовый каталог нового бизнеса
type Template struct {
	Business BusinessDefaults `yaml:"business"`
	Services []ServiceSeed    `yaml:"services"`
	Staff    []StaffSeed      `yaml:"staff"`
}

type BusinessDefaults struct {
	OpenDays            []int    `yaml:"open_days"`
	OpeningTime         string   `yaml:"opening_time"`
	ClosingTime         string   `yaml:"closing_time"`
	SaturdayClosingTime string   `yaml:"saturday_closing_time"`
	SlotIntervalMinutes int      `yaml:"slot_interval_minutes"`
	ReviewOrder         string   `yaml:"review_order"`
	Categories          []string `yaml:"categories"`
}

type ServiceSeed struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Duration    string `yaml:"duration"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
}

type StaffSeed struct {
	Name             string   `yaml:"name"`
	Role             string   `yaml:"role"`
	Specialties      []string `yaml:"specialties"`
	CertificateTitle string   `yaml:"certificate_title"`
}

// Load читает шаблон из YAML файла
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed template %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает шаблон и проверяет, что категории услуг объявлены в business.categories
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse seed template: %w", err)
	}

	categories := make(map[string]struct{}, len(t.Business.Categories))
	for _, c := range t.Business.Categories {
		categories[c] = struct{}{}
	}
	for _, s := range t.Services {
		if _, ok := categories[s.Category]; !ok {
			return nil, fmt.Errorf("seed service %q: category %q is not declared", s.Name, s.Category)
		}
	}
	return &t, nil
}

// ApplyTo заполняет незаданные поля бизнеса значениями шаблона
func (t *Template) ApplyTo(b *domain.Business) {
	d := t.Business
	if len(b.OpenDays) == 0 {
		b.OpenDays = append([]int(nil), d.OpenDays...)
	}
	if b.OpeningTime == "" {
		b.OpeningTime = d.OpeningTime
	}
	if b.ClosingTime == "" {
		b.ClosingTime = d.ClosingTime
	}
	if b.SaturdayClosingTime == "" {
		b.SaturdayClosingTime = d.SaturdayClosingTime
	}
	if b.SlotIntervalMinutes == 0 {
		b.SlotIntervalMinutes = d.SlotIntervalMinutes
	}
	if b.ReviewOrder == "" {
		b.ReviewOrder = domain.ReviewOrder(d.ReviewOrder)
	}
	if len(b.Categories) == 0 {
		b.Categories = append([]string(nil), d.Categories...)
	}
	b.ApplyDefaults()
}

// ServicesFor услуги шаблона для бизнеса
func (t *Template) ServicesFor(businessCode string) []*domain.Service {
	out := make([]*domain.Service, 0, len(t.Services))
	for _, s := range t.Services {
		out = append(out, &domain.Service{
			BusinessCode: businessCode,
			Name:         s.Name,
			Category:     s.Category,
			Duration:     s.Duration,
			Price:        s.Price,
			Description:  s.Description,
		})
	}
	return out
}

// StaffFor сотрудники шаблона для бизнеса
func (t *Template) StaffFor(businessCode string) []*domain.Staff {
	out := make([]*domain.Staff, 0, len(t.Staff))
	for _, s := range t.Staff {
		st := &domain.Staff{
			BusinessCode: businessCode,
			Name:         s.Name,
			Role:         s.Role,
			Specialties:  append([]string(nil), s.Specialties...),
		}
		if s.CertificateTitle != "" {
			title := s.CertificateTitle
			st.CertificateTitle = &title
		}
		out = append(out, st)
	}
	return out
}
