package services

import (
	"fmt"
	"sync"
	"time"

	"chat-admin/models"
	"chat-admin/utils"
)

// DailyCounter 今日新增计数器。基于观测到的总数推算当日增量，
// 日期变更时清零并重置基线。并发访问下由互斥锁保护。
type DailyCounter struct {
	mu        sync.Mutex
	baseline  int64 // -1 表示尚未观测
	resetDate time.Time
	increase  int64
}

func NewDailyCounter() *DailyCounter {
	return &DailyCounter{baseline: -1, resetDate: dateOf(time.Now())}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Observe 记录一次总数观测，返回当日累计增量
func (c *DailyCounter) Observe(total int64, now time.Time) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.baseline == -1 {
		c.baseline = total
	}

	today := dateOf(now)
	if !today.Equal(c.resetDate) {
		c.resetDate = today
		c.baseline = total
		c.increase = 0
	}

	if total > c.baseline {
		c.increase += total - c.baseline
		c.baseline = total
	}
	return c.increase
}

// growthRate 增长率 = (今日新增 - 昨日新增) * 100 / 昨日新增，昨日为 0 时返回 "0.0"
func growthRate(todayIncrease, yesterdayCount int64) string {
	if yesterdayCount == 0 {
		return "0.0"
	}
	rate := float64(todayIncrease-yesterdayCount) * 100 / float64(yesterdayCount)
	return fmt.Sprintf("%.1f", rate)
}

// TodayStats 今日用户统计
type TodayStats struct {
	Total          int64  `json:"total"`
	TodayCount     int64  `json:"todayCount"`
	YesterdayCount int64  `json:"yesterdayCount"`
	GrowthRate     string `json:"growthRate"`
}

func (s *UserService) TodayStats() (*TodayStats, error) {
	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, utils.Persistence(err, "统计用户总数失败")
	}

	now := time.Now()
	todayIncrease := s.Counter.Observe(total, now)

	yesterday := now.AddDate(0, 0, -1)
	var yesterdayCount int64
	err := s.DB.Model(&models.User{}).
		Where("created_at BETWEEN ? AND ?", dateOf(yesterday), endOfDay(yesterday)).
		Count(&yesterdayCount).Error
	if err != nil {
		return nil, utils.Persistence(err, "统计昨日新增失败")
	}

	return &TodayStats{
		Total:          total,
		TodayCount:     todayIncrease,
		YesterdayCount: yesterdayCount,
		GrowthRate:     growthRate(todayIncrease, yesterdayCount),
	}, nil
}

// GrowthStats 近 7 天增长曲线，三组序列按日期从旧到新对齐
type GrowthStats struct {
	Dates         []string `json:"dates"`
	TotalCounts   []int64  `json:"totalCounts"`
	DailyIncrease []int64  `json:"dailyIncrease"`
}

func (s *UserService) Growth() (*GrowthStats, error) {
	stats := &GrowthStats{
		Dates:         make([]string, 0, 7),
		TotalCounts:   make([]int64, 0, 7),
		DailyIncrease: make([]int64, 0, 7),
	}

	now := time.Now()
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := dateOf(day)
		dayEnd := endOfDay(day)

		stats.Dates = append(stats.Dates, fmt.Sprintf("%d-%d", int(day.Month()), day.Day()))

		var daily int64
		err := s.DB.Model(&models.User{}).
			Where("created_at BETWEEN ? AND ?", dayStart, dayEnd).
			Count(&daily).Error
		if err != nil {
			return nil, utils.Persistence(err, "统计每日新增失败")
		}
		stats.DailyIncrease = append(stats.DailyIncrease, daily)

		var cumulative int64
		err = s.DB.Model(&models.User{}).
			Where("created_at <= ?", dayEnd).
			Count(&cumulative).Error
		if err != nil {
			return nil, utils.Persistence(err, "统计累计用户失败")
		}
		stats.TotalCounts = append(stats.TotalCounts, cumulative)
	}
	return stats, nil
}

// bucketRegions 按地址前两个字分组，跳过空地址、占位符和过短地址
func bucketRegions(users []models.User) map[string]int {
	buckets := make(map[string]int)
	for _, u := range users {
		if u.Address == "" || u.Address == "(Null)" {
			continue
		}
		runes := []rune(u.Address)
		if len(runes) < 2 {
			continue
		}
		buckets[string(runes[:2])]++
	}
	return buckets
}

// RegionDistribution 地区分布，没有可用地址时归入"未知"
func (s *UserService) RegionDistribution() (map[string]int, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}

	buckets := bucketRegions(users)
	if len(buckets) == 0 {
		buckets["未知"] = len(users)
	}
	return buckets, nil
}
