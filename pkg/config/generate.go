package config

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# dotlink configuration
# Save as .dotlink.toml at the root of your dotfiles.
# Every key can also be set through DOTLINK_<SECTION>__<KEY>.

`

// Generate renders the default configuration as a TOML document.
func Generate() (string, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return "", errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	out, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return generatedHeader + string(out), nil
}
