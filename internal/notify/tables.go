package notify

import "strconv"

// Display names for marketplace violation type codes
var violationTypes = map[int]string{
	5:   "Tingkat Pengiriman Terlambat Tinggi",
	6:   "Tingkat Non-fulfillment Tinggi",
	7:   "Jumlah pesanan tidak terpenuhi tinggi",
	8:   "Jumlah pengiriman terlambat tinggi",
	9:   "Produk Terlarang",
	10:  "Pelanggaran Hak Cipta / IP",
	11:  "Spam",
	12:  "Menyalin/Mencuri gambar",
	13:  "Mengunggah ulang produk yang dihapus tanpa perubahan",
	14:  "Membeli barang palsu dari mall",
	15:  "Barang palsu terdeteksi marketplace",
	16:  "Persentase pre-order tinggi",
	17:  "Percobaan penipuan terkonfirmasi (total)",
	18:  "Percobaan penipuan mingguan (Voucher)",
	19:  "Alamat pengembalian palsu",
	20:  "Penipuan/penyalahgunaan pengiriman",
	21:  "Tingkat chat tidak direspon tinggi",
	22:  "Balasan chat kasar",
	23:  "Meminta pembeli membatalkan pesanan",
	24:  "Balasan kasar pada ulasan pembeli",
	25:  "Melanggar kebijakan Pengembalian/Refund",
	101: "Alasan Tier",
}

// Display names for penalty-point removal reason codes
var removalReasons = map[int]string{
	101: "Alasan Lain",
	102: "Error Sistem Marketplace",
	103: "Masalah Logistik Pihak Ketiga",
	104: "Cuaca / Bencana Alam",
	105: "Pengecualian Khusus",
	106: "Pengecualian untuk fulfillment SBS",
	107: "Pengecualian untuk pelanggaran listing SIP",
	108: "IPR Tervalidasi",
}

// Penalty action types on the wire
const (
	actionPointIssued  = 1
	actionPointRemoved = 2
	actionTierUpdate   = 3
)

var penaltyActions = map[int]string{
	actionPointIssued:  "POINT_ISSUED",
	actionPointRemoved: "POINT_REMOVED",
	actionTierUpdate:   "TIER_UPDATE",
}

// lookupOrRaw resolves a code through a display table; unknown codes
// pass through as the raw number so a new code never breaks a build.
func lookupOrRaw(table map[int]string, code int) string {
	if name, ok := table[code]; ok {
		return name
	}
	return strconv.Itoa(code)
}
