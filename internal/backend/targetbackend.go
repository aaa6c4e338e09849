package backend

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/funvibe/lolc/internal/cache"
	"github.com/funvibe/lolc/internal/pipeline"
	"github.com/funvibe/lolc/internal/target"
)

// TargetBackend renders the program and builds it to Output. With a cache
// set, an artifact built from identical code and settings is reused.
type TargetBackend struct {
	Target target.Target
	Output string
	Cache  *cache.Cache

	// Compiler and Flags only contribute to the cache key.
	Compiler string
	Flags    []string
}

func (b *TargetBackend) Name() string { return "target:" + b.Target.Name() }

func (b *TargetBackend) Run(ctx *pipeline.PipelineContext) error {
	code, err := target.Assemble(b.Target, ctx.Program)
	if err != nil {
		return err
	}
	ctx.Rendered = code
	if b.Output == "" {
		return nil
	}

	log := ctx.Log().WithFields(logrus.Fields{"target": b.Target.Name(), "output": b.Output})

	var key string
	if b.Cache != nil {
		key = cache.Key(code, b.Target.Name(), b.Compiler, b.Flags)
		entry, ok, err := b.Cache.Lookup(ctx.Ctx(), key)
		if err != nil {
			log.WithError(err).Warn("cache lookup failed")
		} else if ok {
			if err := b.Cache.Restore(entry, b.Output); err != nil {
				return err
			}
			log.WithField("build", entry.BuildID).Debug("cache hit")
			ctx.Artifact = b.Output
			return nil
		}
	}

	if err := b.Target.Build(ctx.Ctx(), code, b.Output); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	ctx.Artifact = b.Output

	if b.Cache != nil {
		entry, err := b.Cache.Store(ctx.Ctx(), key, b.Target.Name(), b.Output)
		if err != nil {
			log.WithError(err).Warn("failed to cache artifact")
			return nil
		}
		log.WithField("build", entry.BuildID).Debug("artifact cached")
	}
	return nil
}
