package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFromYaml(t *testing.T) {
	Convey("Given no config path", t, func() {
		cfg, err := FromYaml("")

		Convey("FromYaml returns the defaults untouched", func() {
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, Defaults())
		})
	})

	Convey("Given a config path that does not exist", t, func() {
		cfg, err := FromYaml(filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("a missing file is tolerated, defaults are returned", func() {
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, Defaults())
		})
	})

	Convey("Given a YAML file overriding a few fields", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "match.yaml")
		body := "width: 31\nheight: 21\ncheese: 15\nseed: 42\n"
		err := os.WriteFile(path, []byte(body), 0o644)
		So(err, ShouldBeNil)

		cfg, err := FromYaml(path)

		Convey("the named fields are overridden and the rest keep their defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Width, ShouldEqual, 31)
			So(cfg.Height, ShouldEqual, 21)
			So(cfg.CheeseCount, ShouldEqual, 15)
			So(cfg.Seed, ShouldEqual, int64(42))
			So(cfg.MaxTurns, ShouldEqual, Defaults().MaxTurns)
		})
	})
}

func TestBindFlagsOverridesLoadedConfig(t *testing.T) {
	Convey("Given a config loaded from YAML", t, func() {
		cfg := Defaults()
		cfg.Width = 11

		Convey("flags parsed afterward win over the loaded value", func() {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			BindFlags(fs, &cfg)
			err := fs.Parse([]string{"-width", "99"})

			So(err, ShouldBeNil)
			So(cfg.Width, ShouldEqual, 99)
			So(cfg.Height, ShouldEqual, Defaults().Height)
		})
	})
}
