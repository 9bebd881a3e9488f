package element

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// ErrCorruptCache 缓存文件存在但无法解析
// 静默回退空缓存会掩盖数据丢失，因此必须显式上报
var ErrCorruptCache = errors.New("元素缓存文件已损坏")

// CacheFileName 缓存文件名
const CacheFileName = "elements_cache.json"

// timestampFormat 模板文件名和记录时间戳使用的格式
const timestampFormat = "20060102_150405"

// Record 已学习元素的持久化记录
// JSON 键与历史缓存文件保持一致，旧进程写入的文件可直接读取
type Record struct {
	// Filename 模板图像文件名
	Filename string `json:"filename"`
	// Filepath 模板图像完整路径
	Filepath string `json:"filepath"`
	// Coords 学习时的像素矩形
	Coords Geometry `json:"coords"`
	// Timestamp 学习时间
	Timestamp string `json:"timestamp"`
}

// Store 元素持久化仓库
// 单个 JSON 缓存文件加每个元素一张模板 PNG，按单进程独占使用设计
type Store struct {
	dir       string
	cacheFile string
	records   map[string]Record
}

// NewStore 创建元素仓库并加载已有缓存
// 目录不存在时自动创建；缓存文件损坏时返回 ErrCorruptCache
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("创建元素目录失败: %w", err)
	}

	s := &Store{
		dir:       dir,
		cacheFile: filepath.Join(dir, CacheFileName),
		records:   make(map[string]Record),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load 从磁盘加载缓存
// 缓存文件不存在时视为空缓存，不是错误
func (s *Store) Load() error {
	data, err := os.ReadFile(s.cacheFile)
	if os.IsNotExist(err) {
		s.records = make(map[string]Record)
		return nil
	}
	if err != nil {
		return fmt.Errorf("读取缓存文件失败: %w", err)
	}

	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if records == nil {
		records = make(map[string]Record)
	}

	s.records = records
	return nil
}

// Save 将缓存写入磁盘
// 先写临时文件再重命名，中途崩溃不会留下半截内容
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化缓存失败: %w", err)
	}

	tmpFile := s.cacheFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("写入临时缓存文件失败: %w", err)
	}
	if err := os.Rename(tmpFile, s.cacheFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("替换缓存文件失败: %w", err)
	}
	return nil
}

// Put 保存元素模板和几何信息，同名记录直接覆盖（最后写入生效）
func (s *Store) Put(name string, template image.Image, geo Geometry) (Record, error) {
	timestamp := time.Now().Format(timestampFormat)
	filename := fmt.Sprintf("%s_%s.png", SanitizeName(name), timestamp)
	path := filepath.Join(s.dir, filename)

	if err := writePNG(path, template); err != nil {
		return Record{}, fmt.Errorf("保存模板图像失败: %w", err)
	}

	record := Record{
		Filename:  filename,
		Filepath:  path,
		Coords:    geo,
		Timestamp: timestamp,
	}
	s.records[name] = record

	if err := s.Save(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Get 查找元素记录
func (s *Store) Get(name string) (Record, bool) {
	record, ok := s.records[name]
	return record, ok
}

// Names 返回所有已知元素名称（排序后）
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回已知元素数量
func (s *Store) Len() int {
	return len(s.records)
}

// Clear 清空缓存并持久化空状态
// 已写入的模板图像文件不会被删除（已知限制）
func (s *Store) Clear() error {
	s.records = make(map[string]Record)
	return s.Save()
}

// Dir 返回仓库目录
func (s *Store) Dir() string {
	return s.dir
}

// SanitizeName 将元素描述转换为文件系统安全的名称
// 保留字母数字、空格、连字符和下划线，空格转下划线，统一小写
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ':
			b.WriteRune('_')
		case r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// writePNG 将图像写为 PNG 文件
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
