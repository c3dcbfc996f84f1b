package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"globassets_dev_v1_202608/internal/model"
	"globassets_dev_v1_202608/internal/repository"
	"globassets_dev_v1_202608/pkg/estate"
	"globassets_dev_v1_202608/pkg/utils"
)

func newCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.StateMirror{}, &model.RegionMirror{},
		&model.RoomTypeMirror{}, &model.FeatureMirror{},
	); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func newRemoteStub(t *testing.T, handler http.HandlerFunc) (*estate.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return estate.NewClient(&estate.Config{BaseURL: srv.URL}), srv
}

// 进程内缓存是包级全局的，目录键在测试间复用前必须清掉
func flushCatalogCache(stateIDs ...string) {
	utils.DeleteCache("catalog:states")
	utils.DeleteCache("catalog:room_types")
	utils.DeleteCache("catalog:features")
	for _, id := range stateIDs {
		utils.DeleteCache("catalog:regions:" + id)
	}
}

func TestStatesMirrorFallback(t *testing.T) {
	flushCatalogCache()
	db := newCatalogTestDB(t)
	repo := repository.NewCatalogRepository(db)

	healthy, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"st-1","name":"Lagos","capital_name":"Ikeja"},{"id":"st-2","name":"Abuja"}]`))
	})

	svc := NewCatalogService(healthy, repo)
	states, err := svc.States(context.Background(), &estate.Session{Access: "t"}, "")
	if err != nil {
		t.Fatalf("远端正常时读取失败: %v", err)
	}
	if len(states) != 2 || states[0].ID != "st-1" {
		t.Fatalf("states = %v", states)
	}

	// 成功读取后镜像应落库
	rows, err := repo.ListStates(context.Background())
	if err != nil || len(rows) != 2 {
		t.Fatalf("镜像行 = %d, err = %v", len(rows), err)
	}

	// 远端故障：清缓存后应退回镜像
	flushCatalogCache()
	down, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svcDown := NewCatalogService(down, repo)
	states, err = svcDown.States(context.Background(), &estate.Session{Access: "t"}, "")
	if err != nil {
		t.Fatalf("镜像兜底失败: %v", err)
	}
	// 镜像按名称排序输出
	if len(states) != 2 || states[0].Name != "Abuja" || states[1].Name != "Lagos" {
		t.Fatalf("兜底结果 = %v", states)
	}

	// 镜像为空时原样上抛远端错误
	flushCatalogCache()
	emptyRepo := repository.NewCatalogRepository(newCatalogTestDB(t))
	svcEmpty := NewCatalogService(down, emptyRepo)
	if _, err := svcEmpty.States(context.Background(), &estate.Session{Access: "t"}, ""); err == nil {
		t.Fatal("空镜像应上抛远端错误")
	}
}

func TestStatesSearchSkipsCacheAndFallback(t *testing.T) {
	flushCatalogCache()
	db := newCatalogTestDB(t)
	repo := repository.NewCatalogRepository(db)
	repo.UpsertStates(context.Background(), []model.StateMirror{{RemoteID: "st-1", Name: "Lagos"}})

	down, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	// 带搜索词的查询是远端语义，不走镜像兜底
	svc := NewCatalogService(down, repo)
	if _, err := svc.States(context.Background(), &estate.Session{Access: "t"}, "lag"); err == nil {
		t.Fatal("搜索查询不应走镜像兜底")
	}
}

func TestRegionsCacheInvalidationOnCreate(t *testing.T) {
	const stateID = "st-inv"
	flushCatalogCache(stateID)
	repo := repository.NewCatalogRepository(newCatalogTestDB(t))

	var listCalls int
	client, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			listCalls++
			w.Write([]byte(`[{"id":"rg-1","name":"Ikeja"}]`))
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"id":"rg-2","name":"Yaba"}`))
		}
	})
	svc := NewCatalogService(client, repo)
	sess := &estate.Session{Access: "t"}

	svc.Regions(context.Background(), sess, stateID)
	svc.Regions(context.Background(), sess, stateID)
	if listCalls != 1 {
		t.Fatalf("缓存未生效，远端被调 %d 次", listCalls)
	}

	region, err := svc.CreateRegion(context.Background(), sess, stateID, "Yaba")
	if err != nil {
		t.Fatalf("新建区域失败: %v", err)
	}
	if region.ID != "rg-2" {
		t.Errorf("region = %+v", region)
	}

	// 新建后缓存失效，下一次列表重新打远端
	svc.Regions(context.Background(), sess, stateID)
	if listCalls != 2 {
		t.Errorf("新建后缓存未失效，远端被调 %d 次", listCalls)
	}
}

func TestRefreshAllMirrorsEverything(t *testing.T) {
	flushCatalogCache()
	db := newCatalogTestDB(t)
	repo := repository.NewCatalogRepository(db)

	client, _ := newRemoteStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/properties/states/":
			w.Write([]byte(`[{"id":"st-1","name":"Lagos"}]`))
		case "/api/v1/properties/regions/":
			w.Write([]byte(`[{"id":"rg-1","name":"Ikeja"},{"id":"rg-2","name":"Yaba"}]`))
		case "/api/v1/properties/room-types/":
			w.Write([]byte(`[{"id":"rt-1","name":"Self Contain"}]`))
		case "/api/v1/properties/property-features":
			w.Write([]byte(`[{"id":"f-1","name":"Borehole","code":"borehole"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	svc := NewCatalogService(client, repo)
	if err := svc.RefreshAll(context.Background(), &estate.Session{Access: "svc"}); err != nil {
		t.Fatalf("全量同步失败: %v", err)
	}

	ctx := context.Background()
	if rows, _ := repo.ListStates(ctx); len(rows) != 1 {
		t.Errorf("州镜像 = %d 行", len(rows))
	}
	if rows, _ := repo.ListRegionsByState(ctx, "st-1"); len(rows) != 2 {
		t.Errorf("区域镜像 = %d 行", len(rows))
	}
	if rows, _ := repo.ListRoomTypes(ctx); len(rows) != 1 {
		t.Errorf("户型镜像 = %d 行", len(rows))
	}
	if rows, _ := repo.ListFeatures(ctx); len(rows) != 1 {
		t.Errorf("特性镜像 = %d 行", len(rows))
	}

	// 重复同步是幂等 upsert，不产生重复行
	if err := svc.RefreshAll(context.Background(), &estate.Session{Access: "svc"}); err != nil {
		t.Fatalf("二次同步失败: %v", err)
	}
	if rows, _ := repo.ListStates(ctx); len(rows) != 1 {
		t.Errorf("二次同步后州镜像 = %d 行", len(rows))
	}
}
