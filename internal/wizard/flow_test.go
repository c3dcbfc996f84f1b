package wizard

import (
	"reflect"
	"testing"
)

// ==================== 步骤表 ====================

func TestTotalSteps(t *testing.T) {
	cases := []struct {
		name string
		flow Flow
		want int
	}{
		{"创建-个人", Flow{IsCompany: false, IsEdit: false}, 5},
		{"创建-公司", Flow{IsCompany: true, IsEdit: false}, 4},
		{"编辑-个人", Flow{IsCompany: false, IsEdit: true}, 3},
		{"编辑-公司", Flow{IsCompany: true, IsEdit: true}, 3},
	}

	for _, c := range cases {
		if got := c.flow.TotalSteps(); got != c.want {
			t.Errorf("%s: TotalSteps = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestMeaningsTable(t *testing.T) {
	cases := []struct {
		name string
		flow Flow
		want [][]Meaning // 下标 0 即第 1 步
	}{
		{
			"创建-个人",
			Flow{IsCompany: false, IsEdit: false},
			[][]Meaning{
				{MeaningRole},
				{MeaningType},
				{MeaningDetails},
				{MeaningImages},
				{MeaningReview},
			},
		},
		{
			"创建-公司",
			Flow{IsCompany: true, IsEdit: false},
			[][]Meaning{
				{MeaningType},
				{MeaningDetails},
				{MeaningImages},
				{MeaningReview},
			},
		},
		{
			"编辑-个人",
			Flow{IsCompany: false, IsEdit: true},
			[][]Meaning{
				{MeaningRole},
				{MeaningDetails},
				{MeaningImages, MeaningReview},
			},
		},
		{
			"编辑-公司",
			Flow{IsCompany: true, IsEdit: true},
			[][]Meaning{
				{MeaningDetails},
				{MeaningImages},
				{MeaningReview},
			},
		},
	}

	for _, c := range cases {
		if got := c.flow.TotalSteps(); got != len(c.want) {
			t.Fatalf("%s: TotalSteps = %d, want %d", c.name, got, len(c.want))
		}
		for i, want := range c.want {
			step := i + 1
			got := c.flow.Meanings(step)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("%s: Meanings(%d) = %v, want %v", c.name, step, got, want)
			}
		}
	}
}

func TestMeaningsOutOfRange(t *testing.T) {
	flow := Flow{IsCompany: false, IsEdit: false}
	if got := flow.Meanings(0); got != nil {
		t.Errorf("Meanings(0) = %v, want nil", got)
	}
	if got := flow.Meanings(6); got != nil {
		t.Errorf("Meanings(6) = %v, want nil", got)
	}
}

func TestHas(t *testing.T) {
	flow := Flow{IsCompany: false, IsEdit: true}

	if !flow.Has(3, MeaningImages) {
		t.Error("编辑-个人第 3 步应承载图片语义")
	}
	if !flow.Has(3, MeaningReview) {
		t.Error("编辑-个人第 3 步应承载核对语义")
	}
	if flow.Has(3, MeaningType) {
		t.Error("编辑模式不应出现类型语义")
	}
}
