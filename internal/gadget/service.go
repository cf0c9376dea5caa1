package gadget

import (
	"fmt"
	"math/rand"
	"strings"
)

// Status はガジェットのステータスを表す。
type Status string

const (
	// StatusAvailable は利用可能な状態。新規作成時のデフォルト。
	StatusAvailable Status = "Available"
	// StatusDeployed は任務に投入中の状態。更新操作でのみ到達する。
	StatusDeployed Status = "Deployed"
	// StatusDestroyed は自爆済みの終端状態。
	StatusDestroyed Status = "Destroyed"
	// StatusDecommissioned は退役済みの終端状態。
	StatusDecommissioned Status = "Decommissioned"
)

// allStatuses は有効なステータスの閉集合。表示順は固定。
var allStatuses = []Status{StatusAvailable, StatusDeployed, StatusDestroyed, StatusDecommissioned}

// Valid はステータスが閉集合に含まれるかを返す。
func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal はステータスが終端（DestroyedまたはDecommissioned）かを返す。
func (s Status) Terminal() bool {
	return s == StatusDestroyed || s == StatusDecommissioned
}

// transitions は通常の更新操作で許可される状態遷移の表。
// 終端状態からは同一ステータスへの再設定のみ許可する。
// 退役・自爆は専用操作が無条件に強制するため、この表を経由しない。
var transitions = map[Status]map[Status]bool{
	StatusAvailable: {
		StatusAvailable:      true,
		StatusDeployed:       true,
		StatusDestroyed:      true,
		StatusDecommissioned: true,
	},
	StatusDeployed: {
		StatusAvailable:      true,
		StatusDeployed:       true,
		StatusDestroyed:      true,
		StatusDecommissioned: true,
	},
	StatusDestroyed: {
		StatusDestroyed: true,
	},
	StatusDecommissioned: {
		StatusDecommissioned: true,
	},
}

// CanTransition は通常の更新操作でfromからtoへの遷移が許可されるかを返す。
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// statusListMessage はバリデーションエラーに使う有効ステータスの一覧文字列を返す。
func statusListMessage() string {
	names := make([]string, 0, len(allStatuses))
	for _, s := range allStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// codenameAdjectives はコードネーム生成用の形容詞語彙。
var codenameAdjectives = []string{
	"Mighty", "Silent", "Phantom", "Shadow", "Stealth",
	"Covert", "Invisible", "Deadly", "Rapid", "Quantum",
}

// codenameNouns はコードネーム生成用の名詞語彙。
var codenameNouns = []string{
	"Eagle", "Panther", "Cobra", "Viper", "Falcon",
	"Wolf", "Hawk", "Tiger", "Raven", "Phoenix",
}

// generateCodename はガジェットの表示名を生成する。
// 形容詞と名詞をそれぞれランダムに1つ選び "The {Adjective} {Noun}" 形式で返す。
// 組み合わせは100通りで、ガジェット間の重複は許容される。
func generateCodename() string {
	adjective := codenameAdjectives[rand.Intn(len(codenameAdjectives))]
	noun := codenameNouns[rand.Intn(len(codenameNouns))]
	return fmt.Sprintf("The %s %s", adjective, noun)
}

// missionSuccessProbability は任務成功確率を[0, 100)の一様分布から生成する。
// 永続化されない表示専用の値で、読み取りのたびに再生成される。
func missionSuccessProbability() int {
	return rand.Intn(100)
}

// generateConfirmationCode は自爆用の6桁確認コード（100000〜999999）を生成する。
// 表示専用であり、後続の呼び出しで照合されることはない。
func generateConfirmationCode() int {
	return 100000 + rand.Intn(900000)
}
