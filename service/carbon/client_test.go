/*
 * @module service/carbon/client_test
 * @description Carbon Optimization客户端测试，使用httptest模拟API与静态凭据
 * @architecture 测试层
 * @documentReference https://learn.microsoft.com/en-us/rest/api/carbon/carbon-service/list-carbon-emission-reports
 * @stateFlow 模拟服务启动 -> 客户端请求 -> 请求体与数据集验证
 * @rules 订阅ID小写提交；分页与TopN参数按API上限收敛；列按字典序排序
 * @dependencies testing, net/http/httptest, github.com/stretchr/testify
 * @refs client.go
 */

package carbon

import (
	"context"
	"encoding/json"
	"esg-reporting-service/service/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCredential 静态Token凭据
type fakeCredential struct {
	token     string
	expiresOn time.Time
	calls     int
}

func (f *fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	return azcore.AccessToken{Token: f.token, ExpiresOn: f.expiresOn}, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server, *fakeCredential) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cred := &fakeCredential{token: "test-token", expiresOn: time.Now().Add(time.Hour)}
	client, err := NewClient(cred)
	require.NoError(t, err)
	client.baseURL = server.URL
	return client, server, cred
}

// 请求体构建：订阅ID小写，月度汇总不携带分页参数
func TestGetMonthlySummary_RequestPayload(t *testing.T) {
	var captured map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "2025-04-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	})

	_, err := client.GetMonthlySummary(context.Background(),
		[]string{"ABCD-1234", "efgh-5678"}, "2025-01-01", "2025-06-01", nil)
	require.NoError(t, err)

	assert.Equal(t, "MonthlySummaryReport", captured["reportType"])
	assert.Equal(t, []any{"abcd-1234", "efgh-5678"}, captured["subscriptionList"])
	assert.Equal(t, []any{"Scope1", "Scope2", "Scope3"}, captured["carbonScopeList"])
	assert.NotContains(t, captured, "pageSize")
	assert.NotContains(t, captured, "topItems")

	dateRange, ok := captured["dateRange"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2025-01-01", dateRange["start"])
	assert.Equal(t, "2025-06-01", dateRange["end"])
}

// 明细报表分页参数超过上限时收敛
func TestGetResourceDetails_PageSizeClamped(t *testing.T) {
	var captured map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	})

	_, err := client.GetResourceDetails(context.Background(),
		[]string{"sub-1"}, "2025-06-01", 99999, nil)
	require.NoError(t, err)

	assert.Equal(t, "ItemDetailsReport", captured["reportType"])
	assert.Equal(t, float64(5000), captured["pageSize"])
	assert.Equal(t, "Resource", captured["categoryType"])
	assert.Equal(t, "LatestMonthEmissions", captured["orderBy"])
	assert.Equal(t, "Desc", captured["sortDirection"])
}

// TopN参数超过上限时收敛
func TestGetTopEmitters_TopItemsClamped(t *testing.T) {
	var captured map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	})

	_, err := client.GetTopEmitters(context.Background(),
		[]string{"sub-1"}, "2025-06-01", 50, nil)
	require.NoError(t, err)

	assert.Equal(t, "TopItemsSummaryReport", captured["reportType"])
	assert.Equal(t, float64(10), captured["topItems"])
}

// 响应记录转换为数据集：列按字典序排序，缺键补缺失值，布尔转字符串
func TestGetEmissionsData_DatasetConversion(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{
			{"totalCarbonEmission": 12.5, "subscriptionId": "sub-1", "isAggregated": true},
			{"totalCarbonEmission": 8.1, "date": "2025-06-01"},
		}})
	})

	ds, err := client.GetEmissionsData(context.Background(), &models.EmissionsQuery{
		ReportType:       models.OverallSummaryReport,
		SubscriptionList: []string{"sub-1"},
		CarbonScopeList:  []models.EmissionScope{models.Scope1},
		DateRange:        models.DateRange{Start: "2025-06-01", End: "2025-06-01"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "isAggregated", "subscriptionId", "totalCarbonEmission"}, ds.Columns)
	require.Equal(t, 2, ds.RowCount())

	assert.Nil(t, ds.Rows[0][ds.ColumnIndex("date")])
	assert.Equal(t, "true", ds.Rows[0][ds.ColumnIndex("isAggregated")])
	assert.Equal(t, 12.5, ds.Rows[0][ds.ColumnIndex("totalCarbonEmission")])
	assert.Equal(t, "2025-06-01", ds.Rows[1][ds.ColumnIndex("date")])
}

// 非200响应转换为显式错误
func TestGetEmissionsData_APIError(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"AuthorizationFailed"}}`))
	})

	_, err := client.GetEmissionsData(context.Background(), &models.EmissionsQuery{
		ReportType:       models.OverallSummaryReport,
		SubscriptionList: []string{"sub-1"},
		DateRange:        models.DateRange{Start: "2025-06-01", End: "2025-06-01"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "AuthorizationFailed")
}

// Token缓存：未到期时多次请求只获取一次Token
func TestGetAccessToken_Cached(t *testing.T) {
	client, _, cred := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	})

	query := &models.EmissionsQuery{
		ReportType:       models.OverallSummaryReport,
		SubscriptionList: []string{"sub-1"},
		DateRange:        models.DateRange{Start: "2025-06-01", End: "2025-06-01"},
	}

	for i := 0; i < 3; i++ {
		_, err := client.GetEmissionsData(context.Background(), query)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, cred.calls)
}

// Token到期前5分钟内触发刷新
func TestGetAccessToken_RefreshesNearExpiry(t *testing.T) {
	client, _, cred := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"value": []map[string]any{}})
	})
	cred.expiresOn = time.Now().Add(time.Minute)

	query := &models.EmissionsQuery{
		ReportType:       models.OverallSummaryReport,
		SubscriptionList: []string{"sub-1"},
		DateRange:        models.DateRange{Start: "2025-06-01", End: "2025-06-01"},
	}

	_, err := client.GetEmissionsData(context.Background(), query)
	require.NoError(t, err)
	_, err = client.GetEmissionsData(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 2, cred.calls)
}
