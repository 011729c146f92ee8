package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"gopkg.in/yaml.v2"

	"github.com/spf13/viper"
)

// Собирает итоговый маппинг тикер->pyth feed id из базового файла и
// локальных оверрайдов. Результат подкладывается в configs/ и попадает
// в секцию pyth.feeds основного конфига.

const outputFile = "configs/feeds.yaml"

func loadBase() (*viper.Viper, error) {
	base := viper.New()
	base.SetConfigName(".feeds.base")
	base.SetConfigType("yaml")
	base.AddConfigPath(".")
	if err := base.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read base feeds config")
	}
	return base, nil
}

func applyOverrides(base *viper.Viper) error {
	override := viper.New()
	override.SetConfigName(".feeds.override")
	override.SetConfigType("yaml")
	override.AddConfigPath(".")
	if err := override.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil // оверрайдов нет — ок
		}
		return errors.Wrap(err, "read override feeds config")
	}

	for ticker, id := range override.GetStringMapString("feeds") {
		base.Set("feeds."+ticker, id)
	}
	return nil
}

func writeResult(base *viper.Viper) error {
	feeds := base.GetStringMapString("feeds")
	if len(feeds) == 0 {
		return errors.New("has no feeds in config")
	}

	bs, err := yaml.Marshal(map[string]any{"pyth": map[string]any{"feeds": feeds}})
	if err != nil {
		return errors.Wrap(err, "marshal feeds to yaml")
	}

	_ = os.Remove(outputFile)
	f, err := os.Create(outputFile)
	if err != nil {
		return errors.Wrap(err, "create feeds.yaml")
	}
	defer func() { _ = f.Close() }()

	if _, err = f.Write(bs); err != nil {
		_ = os.Remove(f.Name())
		return errors.Wrap(err, "write content")
	}
	return nil
}

func main() {
	base, err := loadBase()
	if err != nil {
		panic(fmt.Errorf("feedmap: %w", err))
	}
	if err := applyOverrides(base); err != nil {
		panic(fmt.Errorf("feedmap: %w", err))
	}
	if err := writeResult(base); err != nil {
		panic(fmt.Errorf("feedmap: %w", err))
	}
	fmt.Printf("%s complete\n", outputFile)
	fmt.Println("done")
}
