package store

import (
	"context"
	"testing"
)

func TestPreferenceSetAndGet(t *testing.T) {
	db := createTestDB(t)
	s := NewSQLitePreferenceStore(db)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("设置偏好失败: %v", err)
	}

	record, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("获取偏好失败: %v", err)
	}
	if record == nil {
		t.Fatal("期望获取到偏好记录，实际为 nil")
	}
	if record.Value != "dark" {
		t.Errorf("期望值 dark，实际为 %s", record.Value)
	}
	if record.UpdatedAt.IsZero() {
		t.Error("更新时间不应为零值")
	}
}

func TestPreferenceGetMissing(t *testing.T) {
	db := createTestDB(t)
	s := NewSQLitePreferenceStore(db)

	record, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("获取不存在的偏好不应报错: %v", err)
	}
	if record != nil {
		t.Errorf("不存在的偏好应返回 nil，实际为 %+v", record)
	}
}

func TestPreferenceSetOverwrites(t *testing.T) {
	db := createTestDB(t)
	s := NewSQLitePreferenceStore(db)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("设置偏好失败: %v", err)
	}
	if err := s.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("更新偏好失败: %v", err)
	}

	record, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("获取偏好失败: %v", err)
	}
	if record.Value != "light" {
		t.Errorf("期望更新后的值 light，实际为 %s", record.Value)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("获取偏好数量失败: %v", err)
	}
	if count != 1 {
		t.Errorf("覆盖写入后应只有 1 条记录，实际 %d 条", count)
	}
}

func TestPreferenceDelete(t *testing.T) {
	db := createTestDB(t)
	s := NewSQLitePreferenceStore(db)
	ctx := context.Background()

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("设置偏好失败: %v", err)
	}
	if err := s.Delete(ctx, "theme"); err != nil {
		t.Fatalf("删除偏好失败: %v", err)
	}

	record, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("获取偏好失败: %v", err)
	}
	if record != nil {
		t.Error("删除后的偏好应返回 nil")
	}

	if err := s.Delete(ctx, "theme"); err == nil {
		t.Error("删除不存在的偏好应报错")
	}
}

func TestPreferenceGetAll(t *testing.T) {
	db := createTestDB(t)
	s := NewSQLitePreferenceStore(db)
	ctx := context.Background()

	pairs := map[string]string{
		"theme":       "dark",
		"auto_run":    "true",
		"scripts_dir": "/opt/scripts",
	}
	for k, v := range pairs {
		if err := s.Set(ctx, k, v); err != nil {
			t.Fatalf("设置偏好 %s 失败: %v", k, err)
		}
	}

	records, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("查询偏好设置失败: %v", err)
	}
	if len(records) != len(pairs) {
		t.Fatalf("期望 %d 条记录，实际 %d 条", len(pairs), len(records))
	}

	// 按键升序返回
	if records[0].Key != "auto_run" {
		t.Errorf("期望第一条为 auto_run，实际为 %s", records[0].Key)
	}

	for _, record := range records {
		if pairs[record.Key] != record.Value {
			t.Errorf("偏好 %s 期望值 %s，实际为 %s", record.Key, pairs[record.Key], record.Value)
		}
	}
}
