package resolv

import (
	"io"

	"github.com/birkland/realpath"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Authorities names the provider authorities the classifier recognizes
type Authorities struct {
	ExternalStorage string `yaml:"external_storage" validate:"required"`
	Downloads       string `yaml:"downloads" validate:"required"`
	Media           string `yaml:"media" validate:"required"`
	CloudPhotos     string `yaml:"cloud_photos" validate:"required"`
}

// Collections names the tables media documents and downloads are looked up in
type Collections struct {
	Images          string `yaml:"images" validate:"required,uri"`
	Video           string `yaml:"video" validate:"required,uri"`
	Audio           string `yaml:"audio" validate:"required,uri"`
	PublicDownloads string `yaml:"public_downloads" validate:"required,uri"`
}

// Config encapsulates a resolver config.
//
// Documents is the host's structured-document addressing capability.  It is
// decided once, by the host, rather than inferred from a platform version.
//
// DownloadsRoot is where display names found by the downloads provider are
// placed.  It is not portable across devices, so it should be configured for
// anything but a stock layout.
type Config struct {
	Documents       bool        `yaml:"documents"`
	PrimaryVolume   string      `yaml:"primary_volume" validate:"required"`
	PrimaryRoot     string      `yaml:"primary_root" validate:"required"`
	DownloadsRoot   string      `yaml:"downloads_root" validate:"required"`
	SecondaryPrefix string      `yaml:"secondary_prefix" validate:"required"`
	Authorities     Authorities `yaml:"authorities"`
	Collections     Collections `yaml:"collections"`

	Logger hclog.Logger `yaml:"-" validate:"-"`
}

// DefaultAuthorities returns the authorities of a stock Android device
func DefaultAuthorities() Authorities {
	return Authorities{
		ExternalStorage: realpath.ExternalStorageAuthority,
		Downloads:       realpath.DownloadsAuthority,
		Media:           realpath.MediaAuthority,
		CloudPhotos:     realpath.CloudPhotosAuthority,
	}
}

// DefaultConfig returns the layout of a stock Android device, with document
// addressing supported
func DefaultConfig() Config {
	return Config{
		Documents:       true,
		PrimaryVolume:   realpath.PrimaryVolume,
		PrimaryRoot:     realpath.PrimaryRoot,
		DownloadsRoot:   realpath.DownloadsRoot,
		SecondaryPrefix: realpath.SecondaryPrefix,
		Authorities:     DefaultAuthorities(),
		Collections: Collections{
			Images:          realpath.ImagesCollection.String(),
			Video:           realpath.VideoCollection.String(),
			Audio:           realpath.AudioCollection.String(),
			PublicDownloads: realpath.PublicDownloadsCollection.String(),
		},
	}
}

// LoadConfig reads a YAML config, overlaying it onto DefaultConfig.  Keys
// missing from the document keep their default.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	err := yaml.NewDecoder(r).Decode(&cfg)
	if err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "could not decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate verifies that every required setting is present
func (cfg Config) Validate() error {
	return errors.Wrap(validate.Struct(cfg), "invalid config")
}
