// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/config"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	"github.com/front-desk/visitor-register/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SettingsFlow handles reading and updating the global register configuration
type SettingsFlow interface {
	List(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, request *dto.UpdateSettingsRequest, actor AuthenticatedUser) error
}

// SettingsFlowImpl implements the settings business flow
type SettingsFlowImpl struct {
	settingRepo repository.SettingRepository
	rc          *redis.Client
	cacheConfig *config.CacheConfig
	db          *gorm.DB
}

// NewSettingsFlow creates a new settings flow instance
func NewSettingsFlow(
	settingRepo repository.SettingRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) SettingsFlow {
	return &SettingsFlowImpl{
		settingRepo: settingRepo,
		rc:          rc,
		cacheConfig: cacheConfig,
		db:          db,
	}
}

func redisKey(cfg config.CacheConfig, key string) string {
	if cfg.RedisPrefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", cfg.RedisPrefix, key)
}

// List returns every settings key/value pair. When the cache is enabled the
// map is served cache-aside with the configured TTL; a cache miss or a cache
// failure falls through to the database.
func (sf *SettingsFlowImpl) List(ctx context.Context) (map[string]string, error) {
	var cacheKey string
	if sf.rc != nil {
		cacheKey = redisKey(*sf.cacheConfig, utils.SettingsCacheKey)
		if bs, err := sf.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached map[string]string
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	settings, err := sf.settingRepo.All(ctx)
	if err != nil {
		return nil, NewBusinessError("SETTINGS_LIST_FAILED", "Failed to load settings", err)
	}

	if sf.rc != nil {
		if bs, err := json.Marshal(settings); err == nil {
			_ = sf.rc.Set(ctx, cacheKey, bs, sf.cacheConfig.DefaultTTL).Err()
		}
	}

	return settings, nil
}

// Update upserts the disclosure texts (both mandatory) and the optional keys,
// then invalidates the cached map. All writes run in one transaction.
func (sf *SettingsFlowImpl) Update(ctx context.Context, request *dto.UpdateSettingsRequest, actor AuthenticatedUser) error {
	if request.KVKKText == "" || request.AydinlatmaText == "" {
		return ErrDisclosureTextsRequired
	}

	err := repository.WithTransaction(ctx, sf.db, func(txCtx context.Context) error {
		if err := sf.settingRepo.Set(txCtx, models.SettingKVKKText, request.KVKKText); err != nil {
			return err
		}
		if err := sf.settingRepo.Set(txCtx, models.SettingAydinlatmaText, request.AydinlatmaText); err != nil {
			return err
		}
		if request.RedirectURL != nil {
			if err := sf.settingRepo.Set(txCtx, models.SettingRedirectURL, *request.RedirectURL); err != nil {
				return err
			}
		}
		if request.VisitorPDFPath != nil {
			if err := sf.settingRepo.Set(txCtx, models.SettingVisitorPDFPath, *request.VisitorPDFPath); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return NewBusinessError("SETTINGS_UPDATE_FAILED", "Failed to update settings", err)
	}

	if sf.rc != nil {
		_ = sf.rc.Del(ctx, redisKey(*sf.cacheConfig, utils.SettingsCacheKey)).Err()
	}

	return nil
}
