package conversion_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iamgjek/Shopee2Multi-sub000/config"
	"github.com/iamgjek/Shopee2Multi-sub000/database"
	conversionapi "github.com/iamgjek/Shopee2Multi-sub000/internal/api/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"
)

// stubFetcher replaces the headless browser in tests.
type stubFetcher struct {
	product *conversion.RawProduct
	err     error
}

func (s stubFetcher) Fetch(ctx context.Context, pageURL string) (*conversion.RawProduct, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := *s.product
	p.SourceURL = pageURL
	return &p, nil
}

func scrapedProduct() *conversion.RawProduct {
	return &conversion.RawProduct{
		Title:       "無線藍牙耳機",
		Description: "降噪防水",
		Price:       1299,
		Images:      []string{"https://cf.shopee.tw/a.jpg"},
		Variants:    []conversion.Variant{{Name: "顏色:黑色"}, {Name: "顏色:白色"}},
	}
}

func setupTest(t *testing.T, f stubFetcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.DB = db
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedPlans(db))

	config.UPLOAD_DIR = t.TempDir()
	conversionapi.Init(f, zerolog.Nop())
}

// routerAs mounts the conversion endpoints behind a stub auth layer that
// injects the given user id.
func routerAs(userID uint) *gin.Engine {
	r := gin.New()
	grp := r.Group("/conversion", func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	grp.POST("/convert", conversionapi.Convert)
	grp.GET("/download/:taskId", conversionapi.Download)
	grp.GET("/history", conversionapi.History)
	return r
}

func createUser(t *testing.T, tier string) users.User {
	t.Helper()

	user := users.User{
		Name:       "Tester",
		Email:      uuid.New().String() + "@example.com",
		Role:       "user",
		Status:     users.StatusActive,
		IsVerified: true,
	}
	if tier != plans.TierFree {
		var plan plans.Plan
		require.NoError(t, database.DB.Where("tier = ?", tier).First(&plan).Error)
		user.PlanID = &plan.ID
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func postConvert(t *testing.T, r *gin.Engine, url string, platform string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{"url": url, "platform": platform})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/conversion/convert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(model).Count(&n).Error)
	return n
}

func TestConvertHappyPath(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	user := createUser(t, plans.TierFree)
	r := routerAs(user.ID)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeJSON(t, w)
	taskID, _ := resp["task_id"].(string)
	require.NotEmpty(t, taskID)
	assert.Equal(t, "/conversion/download/"+taskID, resp["download_url"])

	product, _ := resp["product"].(map[string]interface{})
	require.NotNil(t, product)
	assert.Equal(t, "無線藍牙耳機", product["title"])
	assert.Equal(t, float64(1299), product["price"])

	var task conversion.Task
	require.NoError(t, database.DB.First(&task, "id = ?", taskID).Error)
	assert.Equal(t, conversion.StatusCompleted, task.Status)
	assert.Equal(t, user.ID, task.UserID)
	require.NotNil(t, task.ResultPath)
	require.NotNil(t, task.CompletedAt)

	_, err := os.Stat(*task.ResultPath)
	assert.NoError(t, err, "result workbook should exist on disk")

	var logs []usage.Log
	require.NoError(t, database.DB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, user.ID, logs[0].UserID)
	assert.Equal(t, 1, logs[0].ItemCount)
	assert.Equal(t, "momo", logs[0].Platform)
	assert.Equal(t, usage.StatusSuccess, logs[0].Status)
	assert.Nil(t, logs[0].ErrorCode)
}

func TestConvertRequiresAuth(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	r := routerAs(0)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConvertRejectsBadInput(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	user := createUser(t, plans.TierFree)
	r := routerAs(user.ID)

	w := postConvert(t, r, "not-a-url", "momo")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postConvert(t, r, "ftp://shopee.tw/p", "momo")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postConvert(t, r, "https://shopee.tw/product/1/2", "amazon")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rejected requests leave no trace.
	assert.EqualValues(t, 0, countRows(t, &conversion.Task{}))
	assert.EqualValues(t, 0, countRows(t, &usage.Log{}))
}

func TestConvertSuspendedAccount(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	user := createUser(t, plans.TierFree)
	require.NoError(t, database.DB.Model(&user).Update("status", users.StatusSuspended).Error)
	r := routerAs(user.ID)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.EqualValues(t, 0, countRows(t, &conversion.Task{}))
}

func TestConvertFreeQuotaExhausted(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	user := createUser(t, plans.TierFree)
	r := routerAs(user.ID)

	require.NoError(t, database.DB.Create(&usage.Log{
		UserID:    user.ID,
		ItemCount: plans.FreeDailyItemLimit,
		Platform:  "momo",
		Status:    usage.StatusSuccess,
	}).Error)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeJSON(t, w)
	assert.Equal(t, true, resp["upgrade"])

	// The quota rejection happens before acceptance: no task, no extra
	// metering row.
	assert.EqualValues(t, 0, countRows(t, &conversion.Task{}))
	assert.EqualValues(t, 1, countRows(t, &usage.Log{}))
}

func TestConvertQuotaDoesNotBindPaidTiers(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	user := createUser(t, plans.TierPro)
	r := routerAs(user.ID)

	require.NoError(t, database.DB.Create(&usage.Log{
		UserID:    user.ID,
		ItemCount: plans.FreeDailyItemLimit * 3,
		Platform:  "momo",
		Status:    usage.StatusSuccess,
	}).Error)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestConvertPlatformGating(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})

	free := createUser(t, plans.TierFree)
	pro := createUser(t, plans.TierPro)
	biz := createUser(t, plans.TierBiz)

	// Free accounts can't reach the paid marketplaces.
	for _, platform := range []string{"yahoo", "coupang", "rakuten"} {
		w := postConvert(t, routerAs(free.ID), "https://shopee.tw/product/1/2", platform)
		require.Equal(t, http.StatusForbidden, w.Code, platform)
		resp := decodeJSON(t, w)
		assert.Equal(t, true, resp["upgrade"], platform)
	}

	// Pro unlocks yahoo but not the biz-only marketplaces.
	w := postConvert(t, routerAs(pro.ID), "https://shopee.tw/product/1/2", "yahoo")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = postConvert(t, routerAs(pro.ID), "https://shopee.tw/product/1/2", "coupang")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postConvert(t, routerAs(biz.ID), "https://shopee.tw/product/1/2", "rakuten")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Gating rejections happen before acceptance: the only tasks and
	// metering rows are the two successful conversions above.
	assert.EqualValues(t, 2, countRows(t, &conversion.Task{}))
	assert.EqualValues(t, 2, countRows(t, &usage.Log{}))
	var gated int64
	require.NoError(t, database.DB.Model(&usage.Log{}).
		Where("status = ?", usage.StatusFailed).Count(&gated).Error)
	assert.EqualValues(t, 0, gated)
}

func TestConvertFetchFailure(t *testing.T) {
	setupTest(t, stubFetcher{err: &conversion.FetchError{
		URL: "https://shopee.tw/product/1/2",
		Err: errors.New("navigation timeout"),
	}})
	user := createUser(t, plans.TierFree)
	r := routerAs(user.ID)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var task conversion.Task
	require.NoError(t, database.DB.First(&task).Error)
	assert.Equal(t, conversion.StatusFailed, task.Status)
	require.NotNil(t, task.ErrorMessage)
	assert.Contains(t, *task.ErrorMessage, "navigation timeout")
	assert.Nil(t, task.ResultPath)

	var logRow usage.Log
	require.NoError(t, database.DB.First(&logRow).Error)
	assert.Equal(t, usage.StatusFailed, logRow.Status)
	require.NotNil(t, logRow.ErrorCode)
	assert.Equal(t, "fetch_error", *logRow.ErrorCode)
}

func TestConvertParseFailure(t *testing.T) {
	setupTest(t, stubFetcher{err: &conversion.ParseError{
		URL:    "https://shopee.tw/product/1/2",
		Reason: "no recognizable product fields on page",
	}})
	user := createUser(t, plans.TierFree)
	r := routerAs(user.ID)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var logRow usage.Log
	require.NoError(t, database.DB.First(&logRow).Error)
	assert.Equal(t, usage.StatusFailed, logRow.Status)
	assert.Equal(t, "momo", logRow.Platform)
	require.NotNil(t, logRow.ErrorCode)
	assert.Equal(t, "parse_error", *logRow.ErrorCode)

	// The failed attempt still counts against the daily quota.
	items, err := usage.ItemsToday(database.DB, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, items)
}

func TestDownloadOwnerGetsAttachment(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	owner := createUser(t, plans.TierFree)
	r := routerAs(owner.ID)

	w := postConvert(t, r, "https://shopee.tw/product/1/2", "momo")
	require.Equal(t, http.StatusOK, w.Code)
	taskID := decodeJSON(t, w)["task_id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/conversion/download/"+taskID, nil)
	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, req)

	require.Equal(t, http.StatusOK, dl.Code)
	assert.Contains(t, dl.Header().Get("Content-Disposition"), taskID+".xlsx")
	assert.NotZero(t, dl.Body.Len())
}

func TestDownloadHidesForeignTasks(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	owner := createUser(t, plans.TierFree)
	other := createUser(t, plans.TierFree)

	w := postConvert(t, routerAs(owner.ID), "https://shopee.tw/product/1/2", "momo")
	require.Equal(t, http.StatusOK, w.Code)
	taskID := decodeJSON(t, w)["task_id"].(string)

	// Same generic 404 as a task that doesn't exist.
	req := httptest.NewRequest(http.MethodGet, "/conversion/download/"+taskID, nil)
	dl := httptest.NewRecorder()
	routerAs(other.ID).ServeHTTP(dl, req)
	assert.Equal(t, http.StatusNotFound, dl.Code)

	req = httptest.NewRequest(http.MethodGet, "/conversion/download/"+uuid.New().String(), nil)
	dl = httptest.NewRecorder()
	routerAs(other.ID).ServeHTTP(dl, req)
	assert.Equal(t, http.StatusNotFound, dl.Code)
}

func TestDownloadUnfinishedTask(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	owner := createUser(t, plans.TierFree)

	task := conversion.Task{
		ID:        uuid.New().String(),
		UserID:    owner.ID,
		SourceURL: "https://shopee.tw/product/1/2",
		Platform:  "momo",
		Status:    conversion.StatusPending,
	}
	require.NoError(t, database.DB.Create(&task).Error)

	req := httptest.NewRequest(http.MethodGet, "/conversion/download/"+task.ID, nil)
	w := httptest.NewRecorder()
	routerAs(owner.ID).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryListsOwnTasksOnly(t *testing.T) {
	setupTest(t, stubFetcher{product: scrapedProduct()})
	owner := createUser(t, plans.TierFree)
	other := createUser(t, plans.TierFree)

	w := postConvert(t, routerAs(owner.ID), "https://shopee.tw/product/1/2", "momo")
	require.Equal(t, http.StatusOK, w.Code)

	errMsg := "fetch https://shopee.tw/product/3/4: boom"
	require.NoError(t, database.DB.Create(&conversion.Task{
		ID:           uuid.New().String(),
		UserID:       owner.ID,
		SourceURL:    "https://shopee.tw/product/3/4",
		Platform:     "pchome",
		Status:       conversion.StatusFailed,
		ErrorMessage: &errMsg,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/conversion/history", nil)
	rec := httptest.NewRecorder()
	routerAs(owner.ID).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	for _, item := range items {
		switch item["status"] {
		case conversion.StatusCompleted:
			assert.NotEmpty(t, item["download_url"])
		case conversion.StatusFailed:
			_, hasDownload := item["download_url"]
			assert.False(t, hasDownload)
			assert.Equal(t, errMsg, item["error"])
		default:
			t.Fatalf("unexpected status %v", item["status"])
		}
	}

	// The second account sees an empty history.
	rec = httptest.NewRecorder()
	routerAs(other.ID).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversion/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var empty []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &empty))
	assert.Empty(t, empty)
}
