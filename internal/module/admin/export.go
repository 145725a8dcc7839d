package admin

import (
	"fmt"
	"time"

	"activity-signup/internal/global/database"
	"activity-signup/internal/global/response"
	"activity-signup/internal/store"
	"activity-signup/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type activityRow struct {
	Name             string `excel:"活动"`
	Schedule         string `excel:"时间"`
	MaxParticipants  int    `excel:"人数上限"`
	ParticipantCount int    `excel:"已报名"`
	AvailableSpots   int    `excel:"剩余名额"`
}

type enrollmentRow struct {
	Activity   string    `excel:"活动"`
	Email      string    `excel:"邮箱"`
	Name       string    `excel:"姓名"`
	Grade      string    `excel:"年级"`
	EnrolledAt time.Time `excel:"报名时间"`
}

// Export 导出活动与报名名单，两个 sheet
func Export(c *gin.Context) {
	activities, err := store.ListActivities(c.Request.Context(), database.DB)
	if err != nil {
		log.Error("查询活动失败", "error", err)
		response.Fail(c, response.FromStore(err))
		return
	}

	summary := make([]activityRow, 0, len(activities))
	roster := make([]enrollmentRow, 0)
	for i := range activities {
		a := &activities[i]
		summary = append(summary, activityRow{
			Name:             a.Name,
			Schedule:         a.Schedule,
			MaxParticipants:  a.MaxParticipants,
			ParticipantCount: a.ParticipantCount(),
			AvailableSpots:   a.AvailableSpots(),
		})
		for _, e := range a.Enrollments {
			row := enrollmentRow{Activity: a.Name, EnrolledAt: e.EnrolledAt}
			if e.User != nil {
				row.Email, row.Name, row.Grade = e.User.Email, e.User.Name, e.User.Grade
			}
			roster = append(roster, row)
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, "Activities", summary); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	if err := tools.ExportToExcel(f, "Enrollments", roster); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	// 默认的 Sheet1 用不到
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Warn("删除默认 sheet 失败", "error", err)
	}
	if idx, err := f.GetSheetIndex("Activities"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error("写入 excel 错误", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	name := fmt.Sprintf("activities_%s.xlsx", time.Now().Format("20060102_150405"))
	tools.SendAttachment(c, name, tools.ExcelContentType, buf.Bytes())
}
