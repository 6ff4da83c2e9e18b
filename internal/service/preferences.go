// Package service 提供业务逻辑层实现
// 偏好设置服务 - 在键值存储之上提供类型化访问
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"scripts-runner/internal/store"
)

// PreferencesService 偏好设置服务
type PreferencesService struct {
	store  store.PreferenceStore
	logger *slog.Logger

	// onChange 偏好变化回调（用于热生效）
	onChange func(key, value string)
}

// NewPreferencesService 创建偏好设置服务
func NewPreferencesService(s store.PreferenceStore, logger *slog.Logger) *PreferencesService {
	return &PreferencesService{
		store:  s,
		logger: logger,
	}
}

// SetOnChangeCallback 设置偏好变化回调
func (s *PreferencesService) SetOnChangeCallback(fn func(key, value string)) {
	s.onChange = fn
}

// GetString 获取字符串偏好，不存在时返回默认值
func (s *PreferencesService) GetString(ctx context.Context, key, defaultValue string) string {
	record, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("⚠️ 读取偏好失败，使用默认值", "key", key, "error", err)
		return defaultValue
	}
	if record == nil {
		return defaultValue
	}
	return record.Value
}

// GetBool 获取布尔偏好，不存在或解析失败时返回默认值
func (s *PreferencesService) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	value := s.GetString(ctx, key, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		s.logger.Warn("⚠️ 偏好值无法解析为布尔", "key", key, "value", value)
		return defaultValue
	}
	return b
}

// GetInt 获取整数偏好，不存在或解析失败时返回默认值
func (s *PreferencesService) GetInt(ctx context.Context, key string, defaultValue int) int {
	value := s.GetString(ctx, key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		s.logger.Warn("⚠️ 偏好值无法解析为整数", "key", key, "value", value)
		return defaultValue
	}
	return n
}

// Set 写入偏好并触发变化回调
func (s *PreferencesService) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("偏好键不能为空")
	}

	if err := s.store.Set(ctx, key, value); err != nil {
		return err
	}

	s.logger.Debug("💾 偏好已更新", "key", key)

	if s.onChange != nil {
		s.onChange(key, value)
	}

	return nil
}

// Delete 删除偏好
func (s *PreferencesService) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

// GetAll 返回所有偏好的键值映射
func (s *PreferencesService) GetAll(ctx context.Context) (map[string]string, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(records))
	for _, record := range records {
		result[record.Key] = record.Value
	}
	return result, nil
}
