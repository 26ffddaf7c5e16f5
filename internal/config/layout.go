package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DefaultFooterText = "Gracias por su preferencia"

// Layout controls the physical print projection.
type Layout struct {
	Page   PageLayout   `mapstructure:"page"`
	Footer FooterLayout `mapstructure:"footer"`
	PDF    PDFLayout    `mapstructure:"pdf"`
}

type PageLayout struct {
	Width  string `mapstructure:"width"`
	Height string `mapstructure:"height"`
	Margin string `mapstructure:"margin"`
}

type FooterLayout struct {
	Text string `mapstructure:"text"`
}

type PDFLayout struct {
	PageNumberPattern string `mapstructure:"page_number_pattern"`
}

func DefaultLayout() Layout {
	return Layout{
		Page:   PageLayout{Width: "8in", Height: "5.5in", Margin: "0.25in"},
		Footer: FooterLayout{Text: DefaultFooterText},
		PDF:    PDFLayout{PageNumberPattern: "Página {current} de {total}"},
	}
}

type LayoutHolder struct {
	current atomic.Value // holds Layout
}

// NewStaticLayoutHolder serves a fixed layout without a backing file.
func NewStaticLayoutHolder(layout Layout) *LayoutHolder {
	h := &LayoutHolder{}
	h.current.Store(layout)
	return h
}

// NewLayoutHolder reads layout.yml and keeps watching it. Invalid reloads
// are logged and the previous layout stays in effect.
func NewLayoutHolder(cfg Config, log *zap.Logger) (*LayoutHolder, error) {
	log = log.Named("config.layout")
	v := viper.New()

	v.SetConfigName("layout")
	v.SetConfigType("yml")
	if cfg.PrintLayoutPath != "" {
		v.AddConfigPath(cfg.PrintLayoutPath)
	}
	v.AddConfigPath("/etc/recibo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECIBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLayout()
	v.SetDefault("page.width", defaults.Page.Width)
	v.SetDefault("page.height", defaults.Page.Height)
	v.SetDefault("page.margin", defaults.Page.Margin)
	v.SetDefault("footer.text", defaults.Footer.Text)
	v.SetDefault("pdf.page_number_pattern", defaults.PDF.PageNumberPattern)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	var layout Layout
	if err := v.Unmarshal(&layout); err != nil {
		return nil, err
	}
	if err := ValidateLayout(layout); err != nil {
		return nil, err
	}

	holder := NewStaticLayoutHolder(layout)
	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Layout
		if err := v.Unmarshal(&updated); err != nil {
			log.Warn("layout reload failed", zap.Error(err))
			return
		}
		if err := ValidateLayout(updated); err != nil {
			log.Warn("invalid layout ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("layout reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *LayoutHolder) Get() Layout {
	return h.current.Load().(Layout)
}

func ValidateLayout(l Layout) error {
	if strings.TrimSpace(l.Page.Width) == "" || strings.TrimSpace(l.Page.Height) == "" {
		return errors.New("page.width and page.height are required")
	}
	if !strings.Contains(l.PDF.PageNumberPattern, "{current}") && l.PDF.PageNumberPattern != "" {
		return errors.New("pdf.page_number_pattern must contain {current}")
	}
	return nil
}
