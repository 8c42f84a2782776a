// Package config загружает реестр измерительных камер: соответствие
// имени коллара (точки измерения) геометрии камеры.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Chamber — геометрия одной камеры в полевых единицах.
type Chamber struct {
	VolumeML float64 `yaml:"volume_ml"` // полный объём системы [мл]
	AreaCM2  float64 `yaml:"area_cm2"`  // площадь основания [см²]
}

// SI возвращает геометрию в СИ: объём [м³] и площадь [м²].
func (c Chamber) SI() (volumeM3, areaM2 float64) {
	return c.VolumeML * 1e-6, c.AreaCM2 * 1e-4
}

func (c Chamber) validate(name string) error {
	if c.VolumeML <= 0 {
		return fmt.Errorf("config: chamber %q: volume_ml must be > 0", name)
	}
	if c.AreaCM2 <= 0 {
		return fmt.Errorf("config: chamber %q: area_cm2 must be > 0", name)
	}
	return nil
}

// Registry — реестр камер из YAML-файла.
type Registry struct {
	Default  *Chamber           `yaml:"default"`
	Chambers map[string]Chamber `yaml:"chambers"`
}

// Load читает YAML-реестр камер.
func Load(path string) (*Registry, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	reg := &Registry{}
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("config: failed to decode YAML: %w", err)
	}
	if reg.Default == nil && len(reg.Chambers) == 0 {
		return nil, errors.New("config: no chambers defined")
	}
	if reg.Default != nil {
		if err := reg.Default.validate("default"); err != nil {
			return nil, err
		}
	}
	for name, ch := range reg.Chambers {
		if err := ch.validate(name); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Resolve возвращает камеру по имени коллара. Пустое имя даёт default,
// если он задан. Неизвестное имя — ошибка с этим именем.
func (r *Registry) Resolve(collar string) (Chamber, error) {
	if r == nil {
		return Chamber{}, errors.New("config: registry is nil")
	}
	if collar == "" {
		if r.Default != nil {
			return *r.Default, nil
		}
		return Chamber{}, errors.New("config: collar is empty and no default chamber is set")
	}
	if ch, ok := r.Chambers[collar]; ok {
		return ch, nil
	}
	return Chamber{}, fmt.Errorf("config: collar %q not found", collar)
}
