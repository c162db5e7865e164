package store

import (
	"context"
	"testing"

	"github.com/shopmall/recmall/core"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "missing"); !core.IsNotFound(err) {
		t.Errorf("缺失 key 应返回 NotFound, got %v", err)
	}

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get = (%q, %v)", got, err)
	}

	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsNotFound(err) {
		t.Errorf("删除后应返回 NotFound, got %v", err)
	}
}

func TestMemoryStoreBatch(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := ms.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet: %v", err)
	}
	got, err := ms.BatchGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchGet: %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet = %v", got)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "rank", 3, "c")
	ms.ZAdd(ctx, "rank", 1, "a")
	ms.ZAdd(ctx, "rank", 2, "b")
	ms.ZAdd(ctx, "rank", 2, "b2") // 同分按 member 升序

	all, err := ms.ZRange(ctx, "rank", 0, -1)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	want := []string{"c", "b", "b2", "a"}
	if len(all) != len(want) {
		t.Fatalf("ZRange = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("ZRange = %v, want %v", all, want)
		}
	}

	top2, err := ms.ZRange(ctx, "rank", 0, 1)
	if err != nil || len(top2) != 2 || top2[0] != "c" || top2[1] != "b" {
		t.Errorf("ZRange(0,1) = (%v, %v)", top2, err)
	}

	score, err := ms.ZScore(ctx, "rank", "b")
	if err != nil || score != 2 {
		t.Errorf("ZScore = (%v, %v)", score, err)
	}
	if _, err := ms.ZScore(ctx, "rank", "zzz"); !core.IsNotFound(err) {
		t.Errorf("未知 member 应返回 NotFound, got %v", err)
	}
}

func TestMemoryStoreHash(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.HSet(ctx, "h", "f1", []byte("v1"))
	ms.HSet(ctx, "h", "f2", []byte("v2"))

	v, err := ms.HGet(ctx, "h", "f1")
	if err != nil || string(v) != "v1" {
		t.Errorf("HGet = (%q, %v)", v, err)
	}
	if _, err := ms.HGet(ctx, "h", "missing"); !core.IsNotFound(err) {
		t.Errorf("缺失 field 应返回 NotFound, got %v", err)
	}

	all, err := ms.HGetAll(ctx, "h")
	if err != nil || len(all) != 2 {
		t.Errorf("HGetAll = (%v, %v)", all, err)
	}
	empty, err := ms.HGetAll(ctx, "nope")
	if err != nil || len(empty) != 0 {
		t.Errorf("不存在的 hash 应返回空 map: (%v, %v)", empty, err)
	}
}

func TestMemoryCatalog(t *testing.T) {
	products := []core.Product{
		{ID: 101, CategoryID: 1, Price: 100},
		{ID: 102, CategoryID: 2, Price: 200},
	}
	discounts := []core.Discount{
		{ItemID: 101, Type: core.DiscountCoupon, Value: 10},
		{ItemID: 101, Type: core.DiscountPercent, Value: 9},
		{ItemID: 102, Type: core.DiscountCoupon, Value: 20},
	}
	c := NewMemoryCatalog(products, discounts)
	ctx := context.Background()

	all, err := c.FetchItems(ctx, nil)
	if err != nil || len(all) != 2 {
		t.Fatalf("FetchItems(nil) = (%v, %v)", all, err)
	}

	some, err := c.FetchItems(ctx, []int64{102, 999})
	if err != nil || len(some) != 1 || some[0].ID != 102 {
		t.Fatalf("FetchItems([102 999]) = (%v, %v)", some, err)
	}

	ds, err := c.FetchDiscounts(ctx, 101)
	if err != nil || len(ds) != 2 {
		t.Fatalf("FetchDiscounts(101) = (%v, %v)", ds, err)
	}

	allDs, err := c.FetchAllDiscounts(ctx)
	if err != nil || len(allDs) != 3 {
		t.Fatalf("FetchAllDiscounts = (%v, %v)", allDs, err)
	}
}

func TestMemoryLedgerAppend(t *testing.T) {
	l := NewMemoryLedger(nil)
	l.Append(
		core.Interaction{UserID: 1, ItemID: 101, Kind: core.KindView},
		core.Interaction{UserID: 1, ItemID: 101, Kind: core.KindPurchase},
	)
	got, err := l.FetchAllInteractions(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("FetchAllInteractions = (%v, %v)", got, err)
	}

	// 返回的是副本，改写不影响内部
	got[0].UserID = 999
	again, _ := l.FetchAllInteractions(context.Background())
	if again[0].UserID != 1 {
		t.Error("FetchAllInteractions 应返回副本")
	}
}

func TestKVStatsStore(t *testing.T) {
	kv := NewMemoryStore()
	defer kv.Close()
	ctx := context.Background()

	kv.ZAdd(ctx, DefaultSalesKey, 50, "103")
	kv.ZAdd(ctx, DefaultSalesKey, 10, "104")
	kv.ZAdd(ctx, DefaultSalesKey, 1, "not-an-id") // 非法 member 跳过
	kv.HSet(ctx, DefaultReviewsKey, "101", []byte(`{"count":10,"avg":4.5}`))
	kv.HSet(ctx, DefaultReviewsKey, "bad", []byte(`{"count":1,"avg":1}`))
	kv.HSet(ctx, DefaultReviewsKey, "102", []byte(`not json`))

	s := NewKVStatsStore(kv)

	sales, err := s.FetchSalesTotals(ctx)
	if err != nil {
		t.Fatalf("FetchSalesTotals: %v", err)
	}
	if len(sales) != 2 || sales[103] != 50 || sales[104] != 10 {
		t.Errorf("sales = %v", sales)
	}

	reviews, err := s.FetchReviewStats(ctx)
	if err != nil {
		t.Fatalf("FetchReviewStats: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("reviews = %v, want 仅 101", reviews)
	}
	if st := reviews[101]; st.ReviewCount != 10 || st.AvgRating != 4.5 {
		t.Errorf("reviews[101] = %+v", st)
	}
}
